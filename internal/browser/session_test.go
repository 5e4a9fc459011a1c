// internal/browser/session_test.go
package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devashk/naukribot/internal/config"
)

func launchFake(drv Driver, err error) LaunchFunc {
	return func(context.Context, config.BrowserConfig, *zap.Logger) (Driver, error) {
		return drv, err
	}
}

func TestAcquireNavigatesAndSetsImplicitWait(t *testing.T) {
	cfg := config.NewDefaultConfig()
	drv := &fakeDriver{}

	sess, err := Acquire(context.Background(), cfg, zap.NewNop(), launchFake(drv, nil))
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.NotEmpty(t, sess.ID())
	assert.Same(t, Driver(drv), sess.Driver())
	assert.Equal(t, cfg.Browser.ImplicitWait, drv.ImplicitWait())
	assert.Equal(t, []string{cfg.Site.LoginURL}, drv.navigated)
}

func TestAcquireLaunchFailure(t *testing.T) {
	cfg := config.NewDefaultConfig()
	launchErr := errors.New("chrome not found")

	sess, err := Acquire(context.Background(), cfg, zap.NewNop(), launchFake(nil, launchErr))
	require.Nil(t, sess)
	assert.ErrorIs(t, err, launchErr)
}

// A navigation failure during acquisition must tear the fresh driver down
// instead of leaking a live browser.
func TestAcquireNavigationFailureReleasesDriver(t *testing.T) {
	cfg := config.NewDefaultConfig()
	drv := &fakeDriver{navErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}

	sess, err := Acquire(context.Background(), cfg, zap.NewNop(), launchFake(drv, nil))
	require.Nil(t, sess)
	require.Error(t, err)
	assert.Equal(t, 1, drv.quitCalls)
}

func TestReleaseIsIdempotent(t *testing.T) {
	cfg := config.NewDefaultConfig()
	drv := &fakeDriver{}

	sess, err := Acquire(context.Background(), cfg, zap.NewNop(), launchFake(drv, nil))
	require.NoError(t, err)

	sess.Release(context.Background())
	sess.Release(context.Background())
	assert.Equal(t, 1, drv.quitCalls)
}

func TestReleaseNilSafe(t *testing.T) {
	var sess *Session
	assert.NotPanics(t, func() { sess.Release(context.Background()) })
}

func TestReleaseSwallowsQuitError(t *testing.T) {
	cfg := config.NewDefaultConfig()
	drv := &fakeDriver{quitErr: errors.New("already dead")}

	sess, err := Acquire(context.Background(), cfg, zap.NewNop(), launchFake(drv, nil))
	require.NoError(t, err)

	assert.NotPanics(t, func() { sess.Release(context.Background()) })
	assert.Equal(t, 1, drv.quitCalls)
}

func TestTitleContains(t *testing.T) {
	cfg := config.NewDefaultConfig()
	drv := &fakeDriver{title: "Naukri.com - Jobs In India"}

	sess, err := Acquire(context.Background(), cfg, zap.NewNop(), launchFake(drv, nil))
	require.NoError(t, err)

	assert.True(t, sess.TitleContains(context.Background(), "naukri"))
	assert.True(t, sess.TitleContains(context.Background(), "NAUKRI"))
	assert.False(t, sess.TitleContains(context.Background(), "linkedin"))
}

func TestTitleContainsDriverFailure(t *testing.T) {
	cfg := config.NewDefaultConfig()
	drv := &fakeDriver{titleErr: &DriverFault{Op: "title", Err: context.DeadlineExceeded}}

	sess, err := Acquire(context.Background(), cfg, zap.NewNop(), launchFake(drv, nil))
	require.NoError(t, err)

	assert.False(t, sess.TitleContains(context.Background(), "naukri"))
}

func TestDriverFaultUnwrap(t *testing.T) {
	inner := errors.New("tab gone")
	fault := &DriverFault{Op: "click xpath=//button", Err: inner}

	assert.ErrorIs(t, fault, inner)
	assert.Contains(t, fault.Error(), "click xpath=//button")
}
