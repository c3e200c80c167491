/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package main

/*****************************************************************************************************************/

import (
	"github.com/lumenforge/envprobe/internal/cli"
)

/*****************************************************************************************************************/

func main() {
	cli.Execute()
}

/*****************************************************************************************************************/
