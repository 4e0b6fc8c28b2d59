package domain

//go:generate mockgen -destination=mocks/indexer.go -package=mocks . Indexer

import "context"

// Resolver maps a package file name to its channel location
type Resolver interface {
	// Resolve returns the location recorded for name
	Resolve(name string) (Location, error)
}

// Placer copies a package into the channel tree
type Placer interface {
	// Place copies src into the directory for loc and returns the placement
	Place(ctx context.Context, src string, loc Location) (*Placement, error)
}

// Indexer regenerates channel metadata for a channel root directory
type Indexer interface {
	// Name returns a short description of the indexer
	Name() string
	// Index runs the indexing action for one channel root
	Index(ctx context.Context, channelRoot string) error
}
