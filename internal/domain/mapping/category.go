package mapping

// ---------------------------------------------------------------------------
// Category represents a mapping category
// ---------------------------------------------------------------------------

// Category identifies one of the five field-translation domains. The set is
// closed; the validator currently exercises payment and shipment, the field
// categories exist for the repository and the export pipeline.
type Category string

const (
	// CategoryPayment maps storefront payment gateway names to ERP payment options
	CategoryPayment Category = "payment"
	// CategoryShipment maps storefront shipping method codes to ERP shipment options
	CategoryShipment Category = "shipment"
	// CategoryOrderField maps order header fields to ERP order fields
	CategoryOrderField Category = "order_field"
	// CategoryOrderItemField maps order line fields to ERP line fields
	CategoryOrderItemField Category = "order_item_field"
	// CategoryCustomerField maps customer fields to ERP customer fields
	CategoryCustomerField Category = "customer_field"
)

// AllCategories lists every category in a stable order.
var AllCategories = []Category{
	CategoryPayment,
	CategoryShipment,
	CategoryOrderField,
	CategoryOrderItemField,
	CategoryCustomerField,
}

// IsValid returns true if the category is one of the closed set
func (c Category) IsValid() bool {
	switch c {
	case CategoryPayment, CategoryShipment, CategoryOrderField,
		CategoryOrderItemField, CategoryCustomerField:
		return true
	default:
		return false
	}
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the category
func (c Category) DisplayName() string {
	switch c {
	case CategoryPayment:
		return "Payment Method"
	case CategoryShipment:
		return "Shipment Method"
	case CategoryOrderField:
		return "Order Field"
	case CategoryOrderItemField:
		return "Order Item Field"
	case CategoryCustomerField:
		return "Customer Field"
	default:
		return string(c)
	}
}

// ParseCategory converts a string (e.g. a URL path segment) to a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Kind represents how an entry's target identifier is interpreted
// ---------------------------------------------------------------------------

// Kind governs whether TargetID is a literal value, a structural field
// reference, or an operator-supplied custom field. It applies only to the
// three field categories; payment and shipment entries are always coded.
type Kind string

const (
	// KindFixed means the entry supplies a constant target value
	KindFixed Kind = "fixed"
	// KindOrderHeader means the target references an order header field
	KindOrderHeader Kind = "order_header"
	// KindOrderHeaderTranslated means the header value passes through a translation table
	KindOrderHeaderTranslated Kind = "order_header_translated"
	// KindOrderLine means the target references an order line field
	KindOrderLine Kind = "order_line"
	// KindCustomerField means the target references a customer field
	KindCustomerField Kind = "customer_field"
	// KindCustom means the target is an operator-supplied custom field
	KindCustom Kind = "custom"
)

// IsValid returns true if the kind is one of the known set
func (k Kind) IsValid() bool {
	switch k {
	case KindFixed, KindOrderHeader, KindOrderHeaderTranslated,
		KindOrderLine, KindCustomerField, KindCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// AllowedFor returns true if the kind is valid for the given category.
// Payment and shipment entries carry no kind at all.
func (k Kind) AllowedFor(c Category) bool {
	switch c {
	case CategoryOrderField:
		return k == KindFixed || k == KindOrderHeader || k == KindOrderHeaderTranslated || k == KindCustom
	case CategoryOrderItemField:
		return k == KindFixed || k == KindOrderLine || k == KindCustom
	case CategoryCustomerField:
		return k == KindFixed || k == KindCustomerField || k == KindCustom
	default:
		return false
	}
}
