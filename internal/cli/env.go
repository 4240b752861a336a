package cli

import (
	"os"
	"os/user"

	"golang.org/x/text/unicode/norm"
)

// currentUsername returns $USER, falling back to the OS account name.
func currentUsername() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

// currentDirectory returns the shell's working directory in NFC form.
// $PWD is preferred because it keeps the symlinked path the user typed.
func currentDirectory() string {
	dir := os.Getenv("PWD")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	return norm.NFC.String(dir)
}
