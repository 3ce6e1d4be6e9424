package profile

// Info represents profile information for listing and display.
// Profile content is opaque; the only metadata is the name and whether the
// pointer file currently records it as active.
type Info struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
