package addin

// Outcome is the tag of an ActivationResult.
type Outcome string

const (
	OutcomeSuccess              Outcome = "success"
	OutcomeNotFound             Outcome = "not_found"
	OutcomeActivationFailed     Outcome = "activation_failed"
	OutcomeUnsupportedPlatform  Outcome = "unsupported_platform"
	OutcomeConfigurationMissing Outcome = "configuration_missing"
)

// Reasons reported with OutcomeActivationFailed.
const (
	ReasonFlagNotSet         = "flag did not take effect"
	ReasonNotFoundAfterOpen  = "not found after install attempt"
	ReasonFileMissing        = "file not found"
	ReasonAutomationPanicked = "automation fault"
	ReasonCancelled          = "activation cancelled"
)

// ActivationResult is the value handed back to callers of the locate and
// activate flow. It is never persisted.
type ActivationResult struct {
	Outcome Outcome
	Path    string
	Name    string
	Reason  string
	Err     error
}

// Succeeded reports whether the add-in ended up installed.
func (r ActivationResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// Success builds a successful result for path.
func Success(path string) ActivationResult {
	return ActivationResult{Outcome: OutcomeSuccess, Path: path, Name: baseName(path)}
}

// Failed builds an ActivationFailed result with a reason and optional cause.
func Failed(path, reason string, err error) ActivationResult {
	return ActivationResult{Outcome: OutcomeActivationFailed, Path: path, Name: baseName(path), Reason: reason, Err: err}
}

// ResultFromError maps a domain error returned by the locator onto a result.
func ResultFromError(err error) ActivationResult {
	res := ActivationResult{Err: err}
	switch CodeOf(err) {
	case ErrCodeNotFound:
		res.Outcome = OutcomeNotFound
	case ErrCodeUnsupportedPlatform:
		res.Outcome = OutcomeUnsupportedPlatform
	case ErrCodeConfigurationMissing, ErrCodeValidation:
		res.Outcome = OutcomeConfigurationMissing
	default:
		res.Outcome = OutcomeActivationFailed
	}
	if err != nil {
		res.Reason = err.Error()
	}
	return res
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	return Candidate{Path: path}.Name()
}
