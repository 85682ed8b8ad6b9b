package validator

func init() {
	validate.RegisterValidation("calibration_label", validateCalibrationLabel)
	validate.RegisterValidation("image_payload", validateImagePayload)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validateField(value, rules)
}

var ValidatorInstance = Validator{}
