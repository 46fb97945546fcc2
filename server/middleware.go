package logiproserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/sslogistics/logipro/internal/shared/errors"
)

// IdentityRoleHeader carries the caller's role, resolved by the edge proxy.
// Token verification happens before requests reach this service; the router
// only enforces the role policy.
const IdentityRoleHeader = "X-User-Role"

const (
	roleAdmin   = "ADMIN"
	roleManager = "MANAGER"
	roleDriver  = "DRIVER"
)

// backOffice gates dispatcher mutations; driverFacing additionally admits the
// driver apps reporting from the road. adminOnly guards company-wide settings
// such as the quote rate sheet.
var (
	adminOnly    = []string{roleAdmin}
	backOffice   = []string{roleAdmin, roleManager}
	driverFacing = []string{roleAdmin, roleManager, roleDriver}
)

// requireRole rejects requests whose identity header is absent (401) or names
// a role outside the allowed set (403).
func requireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[strings.ToUpper(role)] = struct{}{}
	}
	return func(c *gin.Context) {
		role := strings.ToUpper(strings.TrimSpace(c.GetHeader(IdentityRoleHeader)))
		if role == "" {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("identity role header is required"))
			c.Abort()
			return
		}
		if _, ok := allowed[role]; !ok {
			respondProblem(c, apierrors.ErrForbidden.WithDetail("role "+role+" may not perform this operation"))
			c.Abort()
			return
		}
		c.Next()
	}
}
