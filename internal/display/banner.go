package display

import (
	"fmt"
	"os"

	"github.com/backmassage/tape2tube/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` _____                  ____  _____      _
|_   _|_ _ _ __   ___  |___ \|_   _|   _| |__   ___
  | |/ _`+"`"+` | '_ \ / _ \   __) | | || | | | '_ \ / _ \
  | | (_| | |_) |  __/  / __/  | || |_| | |_) |  __/
  |_|\__,_| .__/ \___| |_____| |_| \__,_|_.__/ \___|
          |_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
