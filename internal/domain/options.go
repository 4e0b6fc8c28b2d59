package domain

// CommonOptions contains shared options for distribution runs.
type CommonOptions struct {
	Verbose  bool
	DryRun   bool
	Index    bool
	Progress bool
	Record   bool
}

// DefaultCommonOptions returns CommonOptions with default values.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{}
}
