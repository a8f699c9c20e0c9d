package workflow

import "agency-backoffice-server/models"

// EntityKind names the three record kinds the workflow engine moves through
// their status machines.
type EntityKind string

const (
	KindApplication EntityKind = "application"
	KindTransaction EntityKind = "transaction"
	KindCommission  EntityKind = "commission"
)

type Role string

const (
	RoleAgent      Role = "agent"
	RoleSubAgent   Role = "sub_agent"
	RoleCounsellor Role = "counsellor"
)

// Actor is the caller identity every engine operation takes explicitly. The
// engine never reads role or scope from ambient state.
type Actor struct {
	ID      uint // agent or counsellor primary key, depending on Role
	Role    Role
	AgentID uint // top-level agent of the caller's hierarchy
}

// Privileged reports whether the actor holds the elevated agent role. Only
// top-level agents get the wider transition tables.
func (a Actor) Privileged() bool {
	return a.Role == RoleAgent
}

// ActorForAgent derives the caller identity from an agent account.
func ActorForAgent(agent *models.Agent) Actor {
	role := RoleAgent
	if agent.IsSubAgent() {
		role = RoleSubAgent
	}
	return Actor{ID: agent.ID, Role: role, AgentID: agent.TopAgentID()}
}

// ActorForCounsellor derives the caller identity from a counsellor account.
func ActorForCounsellor(counsellor *models.Counsellor) Actor {
	return Actor{ID: counsellor.ID, Role: RoleCounsellor, AgentID: counsellor.AgentID}
}
