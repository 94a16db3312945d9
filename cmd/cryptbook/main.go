// Cryptbook is the desktop client of the Cryptbook encryption service.
//
// It stages one file for encryption, estimates how strong the chosen
// password and encryption settings are, and looks up the password books the
// service keeps for every encrypted file.
//
// Build modes:
//   - Default build: GUI + CLI (requires graphics libraries)
//   - CLI-only build: go build -tags cli (no graphics dependencies)

package main

// version is shown in the window title and by --version.
const version = "v0.3.0"

func main() {
	run()
}
