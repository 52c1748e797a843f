package contracts

type CapabilityDeriver interface {
	Derive(roles []string) []string
}
