//go:build linux || darwin

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// loadROM maps the ROM image read-only. The returned cleanup unmaps it;
// callers must be done with the slice first. Inputs that report a size of
// zero (empty files, pipes) are rejected; a file that cannot be mapped is
// read into memory instead.
func loadROM(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if st.Size() == 0 {
		return nil, nil, fmt.Errorf("%s: empty ROM image", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		// Not a mappable file; read it instead.
		raw, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, nil, rerr
		}
		return raw, func() {}, nil
	}
	return data, func() { unix.Munmap(data) }, nil
}
