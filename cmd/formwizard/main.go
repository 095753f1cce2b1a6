// Command formwizard loads application schemas, walks them in the terminal
// and renders individual steps.
package main

import "os"

func main() {
	os.Exit(Execute())
}
