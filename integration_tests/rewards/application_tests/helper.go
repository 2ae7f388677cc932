package rewardsintegrationtests

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	rewardsservice "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/application"
	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	rewardsdb "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/infrastructure/repositories"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/integration_tests/testutils"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps holds the dependencies each test needs.
type TestDeps struct {
	Ctx     context.Context
	Repo    rewardsdb.Repository
	Service *rewardsservice.RewardsService
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing rewards test environment...")
		env, err := testutils.NewTestEnvironment(t)
		if err != nil {
			testEnvErr = err
			return
		}
		testEnv = env
	})

	if testEnvErr != nil {
		t.Fatalf("Rewards test environment initialization failed: %v", testEnvErr)
	}
	if testEnv == nil {
		t.Fatalf("Rewards test environment not initialized")
	}
	return testEnv
}

// SetupTestRewardsService resets the database and builds a service on the
// real repository.
func SetupTestRewardsService(t *testing.T) TestDeps {
	t.Helper()

	env := GetTestEnv(t)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	return newDeps(t, env)
}

// SetupTestRewardsServiceWithoutReset builds a fresh service over whatever
// the database already holds, for restart scenarios.
func SetupTestRewardsServiceWithoutReset(t *testing.T) TestDeps {
	t.Helper()
	return newDeps(t, GetTestEnv(t))
}

func newDeps(t *testing.T, env *testutils.TestEnvironment) TestDeps {
	t.Helper()

	repo := rewardsdb.NewRepository(env.DB)

	testLogger := slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	testMetrics := observability.NewTestRewardsMetrics()
	testTracer := noop.NewTracerProvider().Tracer("test_rewards_service")

	service := rewardsservice.NewRewardsService(
		repo,
		nil,
		rewardsdomain.DefaultRules(),
		testLogger,
		testMetrics,
		testTracer,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		Repo:    repo,
		Service: service,
	}
}

// testWriter routes slog output through the test log.
type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Log(string(p))
	return len(p), nil
}
