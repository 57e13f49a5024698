// Package fileutil holds the file modes used when raml2obj writes files.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode for enriched document output
// files, which may contain internal API details (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// OwnerReadWriteExecute is the mode for directories created alongside them.
const OwnerReadWriteExecute os.FileMode = 0o700
