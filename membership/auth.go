package membership

import (
	"fmt"
	"strings"

	"github.com/amadigital/compass/libs/compass"
)

// Authenticate checks a member's credentials and decides their access
// level. The login may be a username or an email address when emailLookup
// is set. With enableSSO an iMIS SSO token is fetched on success. The login
// mode picks which access levels count as a successful login.
func (s *Service) Authenticate(login, password string, emailLookup, enableSSO bool, loginMode string) *LoginResult {
	retVal := &LoginResult{Profile: Profile{}, LoginStatus: StatusFailed}

	if ok, policyMessage := IsPasswordStrong(password); !ok {
		// Reject before hitting the CRM so members on legacy passwords get
		// the policy message, with a best-effort profile for the reset flow.
		retVal.CustomerMessage = policyMessage
		retVal.Message = "WEAK PASSWORD"
		profileResponse := s.GetMemberProfileByLogin(login, loginMode == LoginModeAMSA)
		if profileResponse.Profile.String("iMISID") != "" {
			retVal.Profile = profileResponse.Profile
		}
		return retVal
	}

	if emailLookup && isEmailAddress(login) {
		// A member holding both AMA and AMSA records shares one email
		// address, so the lookup is scoped by login mode.
		loginFromEmail, err := s.getUsernameFromEmailAddress(login, loginMode == LoginModeAMSA)
		if err != nil {
			// Likely no unique user for this email address.
			retVal.Message = err.Error()
			retVal.CustomerMessage = "We are having issue with your member account. Please contact member services team."
			return retVal
		}
		// A member may log in with an email address different from the one
		// on their profile, in which case nothing comes back.
		if loginFromEmail != "" {
			login = loginFromEmail
		}
	}

	response, err := s.api.Authenticate(login, password)
	if err != nil {
		retVal.Message = "Exception: " + err.Error()
		return retVal
	}
	if response == nil {
		retVal.Message = "Unexpected response result"
		return retVal
	}

	switch {
	case response.LoginSuccess:
		profile := s.GetMemberProfileByUsername(login)
		retVal.LoginStatus = FilterMemberTypeCode(profile.AccessLevel, loginMode)
		if retVal.LoginStatus == StatusSuccess {
			retVal.AccessLevel = profile.AccessLevel
			retVal.Profile = profile.Profile
			retVal.Message = profile.Message
			retVal.CustomerMessage = profile.CustomerMessage
			if enableSSO {
				token, err := s.api.GetToken(profile.Profile.String("iMISID"))
				if err != nil {
					s.log.WithError(err).WithField("login", login).Warn("membership: SSO token fetch failed")
				} else {
					retVal.SSOToken = token
				}
			}
		} else {
			retVal.CustomerMessage = "Your account is not allowed to access this service. Please contact membership services if any questions."
			retVal.Message = "Member Type Code is not valid: " + profile.Profile.String("iMISID")
		}
	case response.LockedOut:
		retVal.Message = "Account is disabled for " + login
		retVal.CustomerMessage = "Account is disabled. Please contact membership services"
	case response.PasswordExpired:
		retVal.Message = "Password expired not valid for " + login
		retVal.CustomerMessage = "Your password is disabled. Please contact membership services"
	default:
		retVal.Message = fmt.Sprintf("Authentication failed for username: %s Failure response from server: %+v", login, *response)
		retVal.CustomerMessage = "Sorry, your username and password does not match our record. Please check and try again."
	}
	return retVal
}

// IsUsernameInUse reports whether a web username is already taken.
func (s *Service) IsUsernameInUse(username string) (bool, error) {
	return s.api.DupCheck(username)
}

// ChangeUsername changes a member's web username. The account must not be
// locked out, the new username must be unique and the current password must
// be valid.
func (s *Service) ChangeUsername(newUsername, currentPassword, imisID string) *AccountOpResult {
	retVal := &AccountOpResult{}
	inUse, err := s.IsUsernameInUse(newUsername)
	if err != nil {
		retVal.Message = err.Error()
		return retVal
	}
	if inUse {
		retVal.Message = "Username is already in use"
		return retVal
	}
	if err := s.api.ChangeUsername(newUsername, currentPassword, imisID); err != nil {
		retVal.Message = err.Error()
		return retVal
	}
	retVal.Status = StatusSuccess
	return retVal
}

// ChangePassword changes a member's password after verifying the current
// one. The underlying service keys the request by username, not iMIS ID.
func (s *Service) ChangePassword(currentPassword, newPassword, imisID string) *AccountOpResult {
	retVal := &AccountOpResult{Status: StatusFailed}
	username, err := s.api.GetUsernameFromIMISID(imisID)
	if err != nil {
		retVal.Message = err.Error()
		retVal.CustomerMessage = "Password is not changed due to a system exception, please try again later"
		return retVal
	}
	if err := s.api.ChangePassword(currentPassword, newPassword, username); err != nil {
		retVal.Message = err.Error()
		retVal.CustomerMessage = "Password is not changed due to a system exception, please try again later"
		return retVal
	}
	retVal.Status = StatusSuccess
	return retVal
}

// ResetPassword sets a new password without the current one, for the
// forgotten-password flow.
func (s *Service) ResetPassword(password, imisID string) *AccountOpResult {
	retVal := &AccountOpResult{Status: StatusFailed}
	username, err := s.api.GetUsernameFromIMISID(imisID)
	if err == nil {
		err = s.api.ResetPassword(password, username)
	}
	if err != nil {
		retVal.Message = err.Error()
		switch {
		case strings.Contains(retVal.Message, "recently been used"):
			retVal.CustomerMessage = "This password was used as your password before, please choose a different one."
		case strings.Contains(retVal.Message, "locked out"):
			retVal.CustomerMessage = "Your account has been locked due to security reasons. Please contact AMA member services on 1300 133 655"
		}
		return retVal
	}
	retVal.Status = StatusSuccess
	return retVal
}

// CreateCredentials registers web credentials for a member. When the wanted
// username is taken the iMIS ID is used instead. Returns the username
// actually registered.
func (s *Service) CreateCredentials(imisID, username, password string) (string, error) {
	inUse, err := s.IsUsernameInUse(username)
	if err != nil {
		return "", err
	}
	if inUse {
		username = imisID
	}
	if err := s.api.AddCredentials(username, password, imisID); err != nil {
		return "", err
	}
	return username, nil
}

// ValidateUserWithToken checks that an iMIS Login cookie belongs to the
// given member by comparing the username it resolves to.
func (s *Service) ValidateUserWithToken(imisID, token string) *AccountOpResult {
	retVal := &AccountOpResult{Status: StatusFailed}
	username, err := s.api.GetUserName(token)
	if err != nil {
		retVal.Message = "Exception: " + err.Error()
		return retVal
	}
	if username == "" {
		retVal.Message = "Unable to validate token"
		return retVal
	}
	usernameFromIMISID, err := s.api.GetUsernameFromIMISID(imisID)
	if err != nil {
		retVal.Message = "Exception: " + err.Error()
		return retVal
	}
	if username != usernameFromIMISID {
		retVal.Message = "Username mismatch " + username + " | " + usernameFromIMISID
		return retVal
	}
	retVal.Status = StatusSuccess
	return retVal
}

// SSOToken fetches an encrypted single-sign-on token for a member.
func (s *Service) SSOToken(imisID string) (*compass.SSOToken, error) {
	return s.api.GetToken(imisID)
}

// ValidateSSOToken validates an SSO token and returns the payload the
// service echoes back for it.
func (s *Service) ValidateSSOToken(token string) (string, error) {
	return s.api.ValidateToken(token)
}

// LogoutUser ends the iMIS session behind a Login cookie.
func (s *Service) LogoutUser(token string) error {
	return s.api.Logout(token)
}
