package interfaces

// IDGenerator hands out identifiers unique within one run.
// An error means the random source failed, not that ids ran out.
type IDGenerator interface {
	Next() (string, error)
}
