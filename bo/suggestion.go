package bo

// Suggestion is the BO service's recommended next parameter set, with the
// acquisition function's internal estimate of its outcome. ExpectedRating
// and ExpectedStdDev are both reported on the 1-10 rating scale regardless
// of which acquisition strategy selected the candidate. Rating is always
// the literal "unrated" and IsSuggestion is always true — both exist so a
// Suggestion can be told apart from a real historical Run carrying the same
// shape of parameter values (spec.md §4.4.5).
type Suggestion struct {
	BeanID          string                `json:"beanId"`
	MachineID       string                `json:"machineId"`
	ParameterValues map[string]ParamValue `json:"parameterValues"`
	Rating          string                `json:"rating"`
	IsSuggestion    bool                  `json:"isSuggestion"`
	ExpectedRating  float64               `json:"expectedRating"`
	ExpectedStdDev  float64               `json:"expectedStdDev"`
}
