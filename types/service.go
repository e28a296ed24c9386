package types

// Service is reference data identifying a product surface feedback can be
// filed against. The list is static; submissions reference a service by ID.
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var knownServices = []Service{
	{ID: "svc1", Name: "Website"},
	{ID: "svc2", Name: "Mobile App"},
	{ID: "svc3", Name: "Public API"},
	{ID: "svc4", Name: "Billing"},
	{ID: "svc5", Name: "Customer Support"},
}

// KnownServices returns the enumerated service list used to populate the
// submission form. The returned slice is a copy.
func KnownServices() []Service {
	out := make([]Service, len(knownServices))
	copy(out, knownServices)
	return out
}
