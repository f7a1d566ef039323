// Command framegen extracts eyewear frame parts from coloured SVG drawings
// and builds complete frame outlines at ordered sizes.
package main

import "github.com/Bersaelor/framecad/cmd/framegen/cmd"

func main() {
	cmd.Execute()
}
