package database

import (
	"fmt"

	"github.com/casbin/casbin/v2"
)

func Casbin() *casbin.Enforcer {
	// Load model configuration file and file-backed policy store
	e, err := casbin.NewEnforcer("config/restful_rbac_model.conf", "config/restful_rbac_policy.csv")
	if err != nil {
		panic(fmt.Sprintf("failed to create casbin enforcer: %v", err))
	}

	e.LoadPolicy()
	return e
}
