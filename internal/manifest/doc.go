// Package manifest loads the urls.txt file of a conda package cache
// directory and resolves cached package file names to the channel and
// platform subdirectory they were downloaded from.
//
// # Manifest Format
//
// A manifest is a plain text file with one source URL per line:
//
//	https://repo.anaconda.com/pkgs/free/linux-64/openssl-1.0.2l-0.tar.bz2
//	https://conda.anaconda.org/conda-forge/noarch/six-1.16.0-pyh6c4a22f_0.tar.bz2
//
// The last three path segments of a line are the channel, the subdirectory
// and the package file name. Channel and subdirectory consist of word
// characters and hyphens only.
//
// # Usage
//
//	loader := manifest.NewLoader(afero.NewOsFs())
//	m, err := loader.Load("/opt/conda/pkgs")
//	if err != nil {
//	    return err
//	}
//
//	loc, err := m.Resolve("openssl-1.0.2l-0.tar.bz2")
//	// loc.Channel == "free", loc.Subdir == "linux-64"
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrManifestUnreadable: urls.txt is missing or cannot be read
//   - ErrEntryNotFound: no manifest line ends with the requested file name
//   - ErrInvalidName: the requested name is not a plain file name
package manifest
