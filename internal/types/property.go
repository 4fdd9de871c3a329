package types

// Listing transaction types. Independent of the property type: a villa
// can be for rent and an apartment for sale.
const (
	ListingForRent  = "For Rent"
	ListingForSale  = "For Sale"
	ListingForLease = "For Lease"
)

// ListingFilter narrows a property search to one transaction type.
type ListingFilter string

const (
	FilterAll   ListingFilter = "all"
	FilterRent  ListingFilter = "rent"
	FilterSale  ListingFilter = "sale"
	FilterLease ListingFilter = "lease"
)

// Wanted returns the listing type the filter selects, or "" for all.
func (f ListingFilter) Wanted() string {
	switch f {
	case FilterRent:
		return ListingForRent
	case FilterSale:
		return ListingForSale
	case FilterLease:
		return ListingForLease
	default:
		return ""
	}
}

// PropertyListing is a synthesized listing built from a nearby place
// plus randomized attributes. Listings live for a single response; two
// requests over the same place may produce different listings.
type PropertyListing struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Type        string      `json:"type"`
	ListingType string      `json:"listingType"`
	Price       int         `json:"price"`
	Currency    string      `json:"currency"`
	Beds        int         `json:"beds"`
	Baths       int         `json:"baths"`
	Sqft        int         `json:"sqft"`
	Location    Coordinates `json:"location"`
	Rating      float64     `json:"rating"`
	Distance    string      `json:"distance"`
}
