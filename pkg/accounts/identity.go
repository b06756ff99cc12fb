package accounts

import (
	"context"

	"code.cloudfoundry.org/lager"

	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
)

// UnknownIP labels an account whose address could not be resolved.
const UnknownIP = "unknown"

// NewUAPIIdentityResolver returns an IdentityResolver backed by
// `uapi Variables get_user_information`.
func NewUAPIIdentityResolver(api cpanel.API, logger lager.Logger) IdentityResolver {
	return &uapiIdentityResolver{
		api:    api,
		logger: logger,
	}
}

type uapiIdentityResolver struct {
	api    cpanel.API
	logger lager.Logger
}

func (r *uapiIdentityResolver) Resolve(ctx context.Context, user string) Identity {
	identity := Identity{IP: UnknownIP}

	result, err := r.api.UAPI(ctx, user, "Variables", "get_user_information")
	if err != nil {
		r.logger.Error("resolve-identity-failed", err, lager.Data{"user": user})
		return identity
	}
	if err := result.Err(); err != nil {
		r.logger.Error("resolve-identity-api-error", err, lager.Data{"user": user})
		return identity
	}

	record, err := result.Record()
	if err != nil {
		r.logger.Error("resolve-identity-malformed-data", err, lager.Data{"user": user})
		return identity
	}

	if ip, ok := record.StringField("ip"); ok && ip != "" {
		identity.IP = ip
	}

	return identity
}
