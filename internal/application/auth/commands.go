package auth

// RegisterCommand creates a new email+password account.
type RegisterCommand struct {
	Email    string
	Username string
	Password string
}

func (c RegisterCommand) CommandName() string { return "Register" }

// LoginCommand authenticates an email+password account.
type LoginCommand struct {
	Email    string
	Password string
}

func (c LoginCommand) CommandName() string { return "Login" }

// ThirdPartyLoginCommand authenticates via an external OAuth provider.
type ThirdPartyLoginCommand struct {
	// Client names the provider, e.g. "google".
	Client string

	// AccessToken is the provider-issued token to verify.
	AccessToken string
}

func (c ThirdPartyLoginCommand) CommandName() string { return "ThirdPartyLogin" }

// RecoverPasswordCommand replaces an account password using a recovery key
// obtained through a RECOVERY email verification.
type RecoverPasswordCommand struct {
	Email       string
	Password    string
	RecoveryKey string
}

func (c RecoverPasswordCommand) CommandName() string { return "RecoverPassword" }
