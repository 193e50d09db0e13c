package gtfs

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingGTFSFile is the sentinel wrapped by LoadTables when one of
// the mandatory GTFS files is absent from the feed directory. Compare
// with errors.Is.
var ErrMissingGTFSFile = fmt.Errorf("missing mandatory GTFS file")

func missingFileError(filename string) error {
	return errors.Wrapf(ErrMissingGTFSFile, "%s", filename)
}
