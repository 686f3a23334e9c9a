package shell

import (
	"io"

	"github.com/fatih/color"
)

const banner = `
  ______                 __         __
 / ____/________ _____  / /_  ____ _/ /__  _____
/ / __/ ___/ __ ` + "`" + `/ __ \/ __ \/ __ ` + "`" + `/ / _ \/ ___/
/ /_/ / /  / /_/ / /_/ / / / / /_/ / /  __/ /
\____/_/   \__,_/ .___/_/ /_/\__, /_/\___/_/
               /_/             /_/
`

// Banner prints the startup banner.
func Banner(w io.Writer) {
	color.New(color.FgMagenta).Fprint(w, banner)
}
