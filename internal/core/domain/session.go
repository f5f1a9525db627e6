package domain

import "context"

// Session is the resolved identity of a caller. It is one of ReporterSession,
// NgoSession, NgoAdminSession or SuperAdminSession.
type Session interface {
	isSession()
}

// ReporterSession is an anonymous caller. Reports can be filed without an account.
type ReporterSession struct{}

type NgoSession struct{ Account *Account }

type NgoAdminSession struct{ Account *Account }

type SuperAdminSession struct{ Account *Account }

func (ReporterSession) isSession()   {}
func (NgoSession) isSession()        {}
func (NgoAdminSession) isSession()   {}
func (SuperAdminSession) isSession() {}

// NewSession picks the session variant for an authenticated account.
func NewSession(a *Account) (Session, error) {
	if a == nil {
		return ReporterSession{}, nil
	}
	switch a.Role {
	case RoleNGO:
		return NgoSession{Account: a}, nil
	case RoleNgoAdmin:
		return NgoAdminSession{Account: a}, nil
	case RoleSuperAdmin:
		return SuperAdminSession{Account: a}, nil
	default:
		return nil, ErrUnauthorized
	}
}

// SessionAccount returns the account behind a session, or nil for reporters.
func SessionAccount(s Session) *Account {
	switch v := s.(type) {
	case NgoSession:
		return v.Account
	case NgoAdminSession:
		return v.Account
	case SuperAdminSession:
		return v.Account
	default:
		return nil
	}
}

// SessionRole returns the role of the session, empty for reporters.
func SessionRole(s Session) Role {
	if a := SessionAccount(s); a != nil {
		return a.Role
	}
	return ""
}

// ActingNgo returns the NGO a session may work cases for. Plain NGOs act for
// themselves; NGO admins act for their linked NGO when they hold
// manage_cases. Everyone else is forbidden.
func ActingNgo(s Session) (string, error) {
	switch v := s.(type) {
	case NgoSession:
		return v.Account.ID, nil
	case NgoAdminSession:
		if v.Account.NgoID == "" || !v.Account.HasPermission(PermManageCases) {
			return "", ErrForbidden
		}
		return v.Account.NgoID, nil
	case SuperAdminSession, ReporterSession:
		return "", ErrForbidden
	default:
		return "", ErrForbidden
	}
}

// ViewingNgo is like ActingNgo but also admits NGO admins holding view_reports.
func ViewingNgo(s Session) (string, error) {
	if v, ok := s.(NgoAdminSession); ok && v.Account.NgoID != "" && v.Account.HasPermission(PermViewReports) {
		return v.Account.NgoID, nil
	}
	return ActingNgo(s)
}

type sessionKey struct{}

// WithSession attaches s to ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session on ctx, defaulting to an anonymous reporter.
func SessionFrom(ctx context.Context) Session {
	if s, ok := ctx.Value(sessionKey{}).(Session); ok && s != nil {
		return s
	}
	return ReporterSession{}
}
