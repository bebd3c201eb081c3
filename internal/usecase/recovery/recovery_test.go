package recovery

import (
	"fmt"
	"testing"
	"time"

	"github.com/LavaJover/shvark-recovery-service/internal/domain"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-recovery-service/internal/usecase/sharding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	vaults    *memVaultRepo
	guardians *memGuardianRepo
	votes     *memVoteRepo
	requests  *memRecoveryRepo
	notifier  *memNotifier
	accounts  *stubAccounts
	uc        *DefaultRecoveryUsecase

	now         time.Time
	guardianIDs []string
	// hex-encoded shares keyed by guardian, as issued at protection init
	shares map[string]string
}

const (
	testVaultID  = "vault-1"
	testOwnerID  = "owner-1"
	testNewOwner = "new-owner-1"
)

// newTestEnv builds a protected vault with 5 active guardians and a
// recovery threshold of 3, using the real secret-sharing service.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		vaults:    newMemVaultRepo(),
		guardians: newMemGuardianRepo(),
		votes:     newMemVoteRepo(),
		notifier:  &memNotifier{},
		accounts:  &stubAccounts{exists: true},
		now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	env.requests = newMemRecoveryRepo(env.vaults)

	require.NoError(t, env.vaults.CreateVault(&domain.Vault{
		ID:      testVaultID,
		OwnerID: testOwnerID,
		Title:   "savings",
		Status:  domain.VaultActive,
	}))

	for i := 1; i <= 5; i++ {
		guardianID := fmt.Sprintf("guardian-%d", i)
		env.guardianIDs = append(env.guardianIDs, guardianID)
		require.NoError(t, env.guardians.CreateGuardian(&domain.Guardian{
			ID:                  guardianID,
			VaultID:             testVaultID,
			UserID:              fmt.Sprintf("user-%d", i),
			CanInitiateRecovery: i == 1,
			ApprovalWeight:      1,
			Active:              true,
		}))
	}

	shardingService := sharding.NewService(env.vaults, env.guardians)
	protection, err := shardingService.InitializeProtection(testVaultID, testOwnerID, env.guardianIDs, 3)
	require.NoError(t, err)
	env.shares = protection.Shares

	env.uc = NewDefaultRecoveryUsecase(
		env.requests,
		env.votes,
		env.guardians,
		env.vaults,
		shardingService,
		env.accounts,
		&memPublisher{},
		env.notifier,
		allowAllLimiter{},
		nil,
	)
	env.uc.now = func() time.Time { return env.now }

	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

func (e *testEnv) initiate(t *testing.T) *domain.RecoveryRequest {
	t.Helper()
	request, err := e.uc.InitiateRecovery(testVaultID, "guardian-1", testNewOwner, 7)
	require.NoError(t, err)
	return request
}

func (e *testEnv) status(t *testing.T, requestID string) domain.RecoveryStatus {
	t.Helper()
	request, err := e.requests.GetRecoveryRequestByID(requestID)
	require.NoError(t, err)
	return request.Status
}

func TestInitiateRecovery(t *testing.T) {
	env := newTestEnv(t)

	request := env.initiate(t)
	assert.Equal(t, domain.RecoveryInitiated, request.Status)
	assert.Equal(t, 3, request.RequiredShares)
	assert.Equal(t, 5, request.TotalShares)
	assert.Equal(t, env.now.Add(30*24*time.Hour), request.ExpiresAt)
	assert.Len(t, request.AuditLog, 1)
	assert.Contains(t, env.notifier.kinds(), notifier.KindRecoveryInitiated)
}

func TestInitiateRecoveryRequiresCapability(t *testing.T) {
	env := newTestEnv(t)

	// guardian-2 cannot initiate
	_, err := env.uc.InitiateRecovery(testVaultID, "guardian-2", testNewOwner, 7)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestInitiateRecoveryUnprotectedVault(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.vaults.CreateVault(&domain.Vault{
		ID:      "vault-bare",
		OwnerID: testOwnerID,
	}))

	_, err := env.uc.InitiateRecovery("vault-bare", "guardian-1", testNewOwner, 7)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
}

func TestRecoveryFullFlow(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	// first two shards: collecting, below threshold
	for i, guardianID := range env.guardianIDs[:2] {
		result, err := env.uc.SubmitGuardianShard(request.ID, guardianID, env.shares[guardianID])
		require.NoError(t, err)
		assert.Equal(t, domain.RecoveryCollectingShards, result.Status)
		assert.Equal(t, i+1, result.SharesCollected)
	}
	assert.Equal(t, domain.RecoveryCollectingShards, env.status(t, request.ID))

	// third shard crosses the threshold and enters the cure period
	result, err := env.uc.SubmitGuardianShard(request.ID, env.guardianIDs[2], env.shares[env.guardianIDs[2]])
	require.NoError(t, err)
	assert.Equal(t, domain.RecoveryCurePeriod, result.Status)

	stored, err := env.requests.GetRecoveryRequestByID(request.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CureExpiresAt)
	assert.Equal(t, env.now.Add(7*24*time.Hour), *stored.CureExpiresAt)
	assert.Contains(t, env.notifier.kinds(), notifier.KindRecoveryCureEntered)

	// approval is premature while the cure window is open
	err = env.uc.ApproveRecovery(request.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	env.advance(7*24*time.Hour + time.Minute)
	require.NoError(t, env.uc.ApproveRecovery(request.ID))
	assert.Equal(t, domain.RecoveryApproved, env.status(t, request.ID))

	require.NoError(t, env.uc.ExecuteRecovery(request.ID, "admin-1"))
	assert.Equal(t, domain.RecoveryExecuted, env.status(t, request.ID))

	vault, err := env.vaults.GetVaultByID(testVaultID)
	require.NoError(t, err)
	assert.Equal(t, testNewOwner, vault.OwnerID)

	// execution is once only
	err = env.uc.ExecuteRecovery(request.ID, "admin-2")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSubmitShardDuplicate(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	guardianID := env.guardianIDs[0]
	_, err := env.uc.SubmitGuardianShard(request.ID, guardianID, env.shares[guardianID])
	require.NoError(t, err)

	_, err = env.uc.SubmitGuardianShard(request.ID, guardianID, env.shares[guardianID])
	assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)

	count, err := env.votes.CountVotesByRequest(request.ID, domain.VoteShardSubmission)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSubmitShardValidation(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	_, err := env.uc.SubmitGuardianShard(request.ID, env.guardianIDs[0], "not-hex!")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// inactive guardians cannot submit
	require.NoError(t, env.guardians.SetActive(env.guardianIDs[1], false, "left"))
	_, err = env.uc.SubmitGuardianShard(request.ID, env.guardianIDs[1], env.shares[env.guardianIDs[1]])
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestSubmitShardRateLimited(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	env.uc.limiter = denyLimiter{}
	_, err := env.uc.SubmitGuardianShard(request.ID, env.guardianIDs[0], env.shares[env.guardianIDs[0]])
	assert.ErrorIs(t, err, domain.ErrRateLimitExceeded)
}

func TestSubmitShardCorruptedShareFailsReconstruction(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	for _, guardianID := range env.guardianIDs[:2] {
		_, err := env.uc.SubmitGuardianShard(request.ID, guardianID, env.shares[guardianID])
		require.NoError(t, err)
	}

	// same length and x-coordinate, corrupted body
	corrupted := []byte(env.shares[env.guardianIDs[2]])
	if corrupted[0] == 'a' {
		corrupted[0] = 'b'
	} else {
		corrupted[0] = 'a'
	}

	result, err := env.uc.SubmitGuardianShard(request.ID, env.guardianIDs[2], string(corrupted))
	assert.ErrorIs(t, err, domain.ErrReconstruction)

	// the shard stays recorded and the request stays open
	require.NotNil(t, result)
	assert.Equal(t, 3, result.SharesCollected)
	assert.Equal(t, domain.RecoveryCollectingShards, env.status(t, request.ID))

	stored, getErr := env.requests.GetRecoveryRequestByID(request.ID)
	require.NoError(t, getErr)
	lastEntry := stored.AuditLog[len(stored.AuditLog)-1]
	assert.Equal(t, "reconstruction_failed", lastEntry.Action)
}

func TestSubmitShardAfterAbsoluteDeadline(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	env.advance(31 * 24 * time.Hour)
	_, err := env.uc.SubmitGuardianShard(request.ID, env.guardianIDs[0], env.shares[env.guardianIDs[0]])
	assert.ErrorIs(t, err, domain.ErrExpired)
	assert.Equal(t, domain.RecoveryExpired, env.status(t, request.ID))
}

func TestChallengeBlocksApproval(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	for _, guardianID := range env.guardianIDs[:3] {
		_, err := env.uc.SubmitGuardianShard(request.ID, guardianID, env.shares[guardianID])
		require.NoError(t, err)
	}
	require.Equal(t, domain.RecoveryCurePeriod, env.status(t, request.ID))

	require.NoError(t, env.uc.ChallengeRecovery(request.ID, testOwnerID, "I did not lose access"))
	assert.Equal(t, domain.RecoveryChallenged, env.status(t, request.ID))

	stored, err := env.requests.GetRecoveryRequestByID(request.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Challenge)
	assert.Equal(t, testOwnerID, stored.Challenge.ChallengerID)

	// a challenged request never reaches approval, even after the window
	env.advance(8 * 24 * time.Hour)
	err = env.uc.ApproveRecovery(request.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// a second challenge has nothing to halt
	err = env.uc.ChallengeRecovery(request.ID, testOwnerID, "again")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// rejection is the remaining exit
	require.NoError(t, env.uc.RejectRecovery(request.ID, "owner proved access"))
	assert.Equal(t, domain.RecoveryRejected, env.status(t, request.ID))
}

func TestChallengeOutsideCurePeriod(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	err := env.uc.ChallengeRecovery(request.ID, testOwnerID, "too early")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestExecuteRequiresExistingAccount(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	for _, guardianID := range env.guardianIDs[:3] {
		_, err := env.uc.SubmitGuardianShard(request.ID, guardianID, env.shares[guardianID])
		require.NoError(t, err)
	}
	env.advance(8 * 24 * time.Hour)
	require.NoError(t, env.uc.ApproveRecovery(request.ID))

	env.accounts.exists = false
	err := env.uc.ExecuteRecovery(request.ID, "admin-1")
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

	// the request stays approved and execution is retryable
	assert.Equal(t, domain.RecoveryApproved, env.status(t, request.ID))

	env.accounts.exists = true
	require.NoError(t, env.uc.ExecuteRecovery(request.ID, "admin-1"))
	assert.Equal(t, domain.RecoveryExecuted, env.status(t, request.ID))
}

func TestRejectTerminalRequest(t *testing.T) {
	env := newTestEnv(t)
	request := env.initiate(t)

	require.NoError(t, env.uc.RejectRecovery(request.ID, "mistake"))
	err := env.uc.RejectRecovery(request.ID, "twice")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
