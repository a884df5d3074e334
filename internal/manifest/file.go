package manifest

import "os"

const defaultWritePermission = 0644 // -rw-r--r--

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, defaultWritePermission)
}
