package calculator

// Form field names of POST /api/calculate.
const (
	FieldFirst     = "num1"
	FieldOperation = "operation"
	FieldSecond    = "num2"
)

// DivisionByZeroMessage is the application error reported for x / 0.
const DivisionByZeroMessage = "Division by zero"

// OutOfRangeMessage is the application error reported when a result does not
// fit in a float64.
const OutOfRangeMessage = "Result out of range"

// CalculateResponse is the JSON body of POST /api/calculate. Exactly one of
// Result and Error is set.
type CalculateResponse struct {
	Result *float64 `json:"result,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// CalcRequest is the JSON body for POST /calculator/{operation}.
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for POST /calculator/{operation}.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
	RequestID string  `json:"request_id"`
}
