package workflow

import (
	"gorm.io/gorm"

	"agency-backoffice-server/models"
)

// Ownership scoping. Visibility follows the hierarchy (agent -> sub-agent ->
// counsellor), not per-row ACLs: a top-level agent sees everything under
// their hierarchy, a sub-agent only what is attributed to them, a counsellor
// reads the applications of their agent's hierarchy and nothing financial.
// Every listing and every engine lookup goes through these helpers so there
// is a single place the rules live.

// ApplicationsFor returns the query scoped to the applications the actor may see.
func ApplicationsFor(db *gorm.DB, actor Actor) *gorm.DB {
	q := db.Model(&models.Application{})
	switch actor.Role {
	case RoleAgent:
		return q.Where("superagent_id = ?", actor.AgentID)
	case RoleSubAgent:
		return q.Where("superagent_id = ? AND subagent_id = ?", actor.AgentID, actor.ID)
	case RoleCounsellor:
		return q.Where("superagent_id = ?", actor.AgentID)
	}
	return q.Where("1 = 0")
}

// TransactionsFor returns the query scoped to the transactions the actor may
// see. Counsellors have no visibility into financial records.
func TransactionsFor(db *gorm.DB, actor Actor) *gorm.DB {
	q := db.Model(&models.Transaction{})
	switch actor.Role {
	case RoleAgent:
		return q.Where("superagent_id = ?", actor.AgentID)
	case RoleSubAgent:
		return q.Where("subagent_id = ?", actor.ID)
	}
	return q.Where("1 = 0")
}

// CommissionsFor returns the query scoped to the commissions the actor may see.
func CommissionsFor(db *gorm.DB, actor Actor) *gorm.DB {
	q := db.Model(&models.Commission{})
	switch actor.Role {
	case RoleAgent:
		return q.Where("agent_id = ?", actor.AgentID)
	case RoleSubAgent:
		return q.Where("subagent_id = ?", actor.ID)
	}
	return q.Where("1 = 0")
}
