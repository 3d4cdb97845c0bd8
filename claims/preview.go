// Package claims decodes token claims for display purposes only. It is a
// claims preview, not a trust boundary: nothing here verifies a signature,
// and nothing here may ever gate access to a protected resource.
package claims

import (
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/JTonyC/servicenow-entraid-approvals/internal/errors"
)

// Preview decodes the claims of a JWT without verifying its signature.
func Preview(rawToken string) (map[string]any, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.ErrInvalidToken
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrapf(err, "claims preview")
	}

	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.ErrInvalidToken
	}
	return map[string]any(mapClaims), nil
}

// UserInfo is the display identity pulled from token claims.
type UserInfo struct {
	Name              string
	PreferredUsername string
	Subject           string
}

// UserInfoFromTokens reads the user's display identity from the ID token,
// falling back to access-token claims for any missing value. Entra puts the
// directory object ID in "oid"; "sub" is the pairwise fallback.
func UserInfoFromTokens(idToken, accessToken string) UserInfo {
	var info UserInfo
	for _, raw := range []string{idToken, accessToken} {
		decoded, err := Preview(raw)
		if err != nil {
			continue
		}
		if info.Name == "" {
			info.Name = stringClaim(decoded, "name")
		}
		if info.PreferredUsername == "" {
			info.PreferredUsername = stringClaim(decoded, "preferred_username")
		}
		if info.Subject == "" {
			info.Subject = stringClaim(decoded, "oid")
			if info.Subject == "" {
				info.Subject = stringClaim(decoded, "sub")
			}
		}
	}
	return info
}

func stringClaim(decoded map[string]any, name string) string {
	s, _ := decoded[name].(string)
	return s
}
