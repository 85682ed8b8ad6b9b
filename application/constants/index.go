package constants

// facegate response codes
// these are 4 digit numbers returned as response_code so clients can branch
// without parsing messages
//
// the 1st digit groups the scenario: 2 accepted work, 4 caller input, 5 backend state

var CALIBRATION_QUEUED uint = 2170        // poll GET /liveness/calibrations/:id for the result
var IMAGE_DECODE_FAILED uint = 4110       // the payload is not a supported image
var INVALID_IMAGE_BUFFER uint = 4120      // declared dimensions do not match the pixel data
var INSUFFICIENT_FRAMES uint = 4130       // capture a longer burst
var INVALID_CALIBRATION_LABEL uint = 4140 // labels are real or spoof
var NO_CALIBRATION_APPLIED uint = 5240    // run /liveness/tune with apply set first
