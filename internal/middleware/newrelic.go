package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// TransactionEnricher returns middleware that tags the current New Relic
// transaction with the authenticated caller and records handler errors.
// The transaction itself is started by nrgin; this runs behind auth so
// the actor is already on the context.
func TransactionEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		txn := nrgin.Transaction(c)
		if txn == nil {
			// Agent disabled - nothing to enrich.
			c.Next()
			return
		}

		if actor, ok := ActorFromContext(c); ok {
			txn.AddAttribute("user.id", actor.UserID)
			if actor.IsAdmin {
				txn.AddAttribute("user.admin", true)
			}
		}

		c.Next()

		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
	}
}
