package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-backoffice-server/models"
)

// Two hierarchies, three applications: one direct to agent A, one through A's
// sub-agent, one under agent B. Transactions and a commission mirror the
// sub-agent application.
func TestVisibilityScoping(t *testing.T) {
	db := newTestDB(t)
	agentA := createAgent(t, db, "agentA")
	subA := createSubAgent(t, db, agentA, "subA")
	agentB := createAgent(t, db, "agentB")
	counsellorA := createCounsellor(t, db, agentA, "counsA")

	appDirect := createApplication(t, db, agentA, applicationOpts{})
	appSub := createApplication(t, db, agentA, applicationOpts{subagent: subA})
	createApplication(t, db, agentB, applicationOpts{})

	subID := subA.ID
	txnSub := models.Transaction{ApplicationID: appSub.ID, SuperagentID: agentA.ID, SubagentID: &subID, Amount: 50000, Status: models.TransactionPending}
	require.NoError(t, db.Create(&txnSub).Error)
	txnDirect := models.Transaction{ApplicationID: appDirect.ID, SuperagentID: agentA.ID, Amount: 20000, Status: models.TransactionPending}
	require.NoError(t, db.Create(&txnDirect).Error)

	comm := models.Commission{ApplicationID: appSub.ID, TransactionID: txnSub.ID, AgentID: agentA.ID, SubagentID: subA.ID, Amount: 5000, Status: models.CommissionPending}
	require.NoError(t, db.Create(&comm).Error)

	countApps := func(actor Actor) int64 {
		var n int64
		require.NoError(t, ApplicationsFor(db, actor).Count(&n).Error)
		return n
	}
	countTxns := func(actor Actor) int64 {
		var n int64
		require.NoError(t, TransactionsFor(db, actor).Count(&n).Error)
		return n
	}
	countComms := func(actor Actor) int64 {
		var n int64
		require.NoError(t, CommissionsFor(db, actor).Count(&n).Error)
		return n
	}

	actorA := ActorForAgent(agentA)
	actorSub := ActorForAgent(subA)
	actorB := ActorForAgent(agentB)
	actorCouns := ActorForCounsellor(counsellorA)

	// Top-level agent sees the whole hierarchy, whoever touched the record.
	assert.Equal(t, int64(2), countApps(actorA))
	assert.Equal(t, int64(2), countTxns(actorA))
	assert.Equal(t, int64(1), countComms(actorA))

	// Sub-agent sees only records attributed to them.
	assert.Equal(t, int64(1), countApps(actorSub))
	assert.Equal(t, int64(1), countTxns(actorSub))
	assert.Equal(t, int64(1), countComms(actorSub))

	// The other hierarchy is invisible both ways.
	assert.Equal(t, int64(1), countApps(actorB))
	assert.Equal(t, int64(0), countTxns(actorB))
	assert.Equal(t, int64(0), countComms(actorB))

	// Counsellor inherits the agent's application visibility but sees no
	// financial records at all.
	assert.Equal(t, int64(2), countApps(actorCouns))
	assert.Equal(t, int64(0), countTxns(actorCouns))
	assert.Equal(t, int64(0), countComms(actorCouns))
}

func TestActorDerivation(t *testing.T) {
	db := newTestDB(t)
	agent := createAgent(t, db, "agent1")
	sub := createSubAgent(t, db, agent, "sub1")
	counsellor := createCounsellor(t, db, sub, "couns1")

	actorAgent := ActorForAgent(agent)
	assert.Equal(t, RoleAgent, actorAgent.Role)
	assert.True(t, actorAgent.Privileged())
	assert.Equal(t, agent.ID, actorAgent.AgentID)

	actorSub := ActorForAgent(sub)
	assert.Equal(t, RoleSubAgent, actorSub.Role)
	assert.False(t, actorSub.Privileged())
	assert.Equal(t, agent.ID, actorSub.AgentID, "sub-agent's hierarchy is the parent's")

	actorCouns := ActorForCounsellor(counsellor)
	assert.Equal(t, RoleCounsellor, actorCouns.Role)
	assert.False(t, actorCouns.Privileged())
	assert.Equal(t, agent.ID, actorCouns.AgentID, "counsellor under a sub-agent still maps to the top-level agent")
}
