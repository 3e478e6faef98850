// Package mmfile provides platform-specific helpers for memory-mapping
// containers read-only.
package mmfile

import "fmt"

// View is a read-only mapping of a whole file.
//
// The mapped bytes must never be written to; on unix the pages are mapped
// PROT_READ and a write faults.
type View struct {
	path    string
	data    []byte
	cleanup func() error
}

// Open maps path and returns a View over its contents.
func Open(path string) (*View, error) {
	data, cleanup, err := Map(path)
	if err != nil {
		return nil, fmt.Errorf("mmfile: open %s: %w", path, err)
	}
	return &View{path: path, data: data, cleanup: cleanup}, nil
}

// Path returns the file the view maps.
func (v *View) Path() string { return v.path }

// Bytes returns the mapped contents. The slice is invalid after Close.
func (v *View) Bytes() []byte { return v.data }

// Len returns the mapped length in bytes.
func (v *View) Len() int { return len(v.data) }

// Close releases the mapping. Calling Close more than once is a no-op.
func (v *View) Close() error {
	if v.cleanup == nil {
		return nil
	}
	err := v.cleanup()
	v.cleanup = nil
	v.data = nil
	return err
}
