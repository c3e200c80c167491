/*****************************************************************************************************************/

//	@package	envprobe
//	@license	MIT

/*****************************************************************************************************************/

package lightextract

/*****************************************************************************************************************/

import "errors"

/*****************************************************************************************************************/

// ErrInvalidChannelCount is returned when the source buffer carries fewer
// than 3 channels per pixel.
var ErrInvalidChannelCount = errors.New("lightextract: source must have at least 3 channels per pixel")

/*****************************************************************************************************************/
