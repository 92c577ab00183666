package enum

/*----------- EnvEnum -----------*/

type EnvEnum string

const (
	LOCAL       EnvEnum = "local"
	DEVELOPMENT EnvEnum = "development"
	PRODUCTION  EnvEnum = "production"
	STAGING     EnvEnum = "staging"
)

func (e EnvEnum) IsValid() bool {
	switch e {
	case LOCAL, DEVELOPMENT, PRODUCTION, STAGING:
		return true
	}
	return false
}

// HideErrors reports whether 5xx error details are kept out of responses.
func (e EnvEnum) HideErrors() bool {
	return e == PRODUCTION || e == STAGING
}
