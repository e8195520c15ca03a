package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/config"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
)

const (
	ContextActor     = "actor"
	ContextRequestID = "requestID"
)

// AuthMiddleware valida o bearer token e deixa o *actor.Actor no contexto.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		who, ok := actorFromClaims(claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextActor, who)
		c.Next()
	}
}

// actorFromClaims: branchId ausente só é aceito para admin.
func actorFromClaims(claims jwt.MapClaims) (*actor.Actor, bool) {
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, false
	}

	raw, _ := claims["role"].(string)
	role := actor.Role(raw)
	if !role.Valid() {
		return nil, false
	}

	who := &actor.Actor{ID: uint(sub), Role: role}
	if branch, ok := claims["branchId"].(float64); ok && branch > 0 {
		id := uint(branch)
		who.BranchID = &id
	} else if role != actor.RoleAdmin {
		return nil, false
	}
	return who, true
}

// RequireAdmin barra profissionais comuns.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		who := ActorFrom(c)
		if who == nil || !who.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_only"})
			return
		}
		c.Next()
	}
}

// ActorFrom devolve o ator autenticado, ou nil nas rotas públicas.
func ActorFrom(c *gin.Context) *actor.Actor {
	v, ok := c.Get(ContextActor)
	if !ok {
		return nil
	}
	who, _ := v.(*actor.Actor)
	return who
}
