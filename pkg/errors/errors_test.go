// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error construction, wrapping and code lookup

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreemvError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.TreemvError
		want string
	}{
		{
			name: "plain",
			err:  errors.New(errors.ErrInvalidInput, "snapshot is nil"),
			want: "[INVALID_INPUT] snapshot is nil",
		},
		{
			name: "formatted",
			err:  errors.Newf(errors.ErrDirCreate, "cannot create %s with mode %o", "dist", 0755),
			want: "[DIR_CREATE] cannot create dist with mode 755",
		},
		{
			name: "wrapped",
			err:  errors.Wrap(stderrors.New("permission denied"), errors.ErrFileAccess, "cannot read input"),
			want: "[FILE_ACCESS] cannot read input: permission denied",
		},
		{
			name: "wrapped formatted",
			err:  errors.Wrapf(stderrors.New("eof"), errors.ErrConfigParse, "parsing %s", ".treemv.toml"),
			want: "[CONFIG_PARSE] parsing .treemv.toml: eof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.NotNil(t, tt.err.Details)
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "unused"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "unused %d", 1))
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrCollision, "collision").
		WithDetail("dest", "b/f.css").
		WithDetails(map[string]interface{}{"sources": []string{"a/x/f.css", "a/y/f.css"}})

	assert.Equal(t, map[string]interface{}{
		"dest":    "b/f.css",
		"sources": []string{"a/x/f.css", "a/y/f.css"},
	}, errors.GetErrorDetails(err))

	var zero errors.TreemvError
	zero.WithDetail("path", "a")
	assert.Equal(t, "a", zero.Details["path"])

	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestCodeLookup(t *testing.T) {
	root := stderrors.New("disk full")
	middle := errors.Wrap(root, errors.ErrActionExecute, "copy failed")
	top := fmt.Errorf("realize: %w", middle)

	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
	}{
		{"direct", errors.New(errors.ErrPath, "bad"), errors.ErrPath},
		{"through fmt wrapping", top, errors.ErrActionExecute},
		{"plain error", root, errors.ErrUnknown},
		{"nil", nil, errors.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, errors.GetErrorCode(tt.err))
			if tt.code != errors.ErrUnknown {
				assert.True(t, errors.IsErrorCode(tt.err, tt.code))
			}
			assert.False(t, errors.IsErrorCode(tt.err, errors.ErrCanceled))
		})
	}

	assert.ErrorIs(t, top, root, "root cause stays reachable")
}

func TestIs_ComparesCodes(t *testing.T) {
	err := errors.Newf(errors.ErrNotFound, "source %q matched no entries", "x")

	assert.ErrorIs(t, err, errors.New(errors.ErrNotFound, ""))
	assert.NotErrorIs(t, err, errors.New(errors.ErrPattern, ""))
}

func TestTransformErrors(t *testing.T) {
	t.Run("pattern error carries the spec", func(t *testing.T) {
		err := errors.PatternError("a/{b,c", "unbalanced %q", "{")
		assert.Equal(t, errors.ErrPattern, err.Code)
		assert.Equal(t, `[PATTERN] invalid pattern "a/{b,c": unbalanced "{"`, err.Error())
		assert.Equal(t, "a/{b,c", err.Details["spec"])
	})

	t.Run("path error names source and dest", func(t *testing.T) {
		err := errors.PathError("a/b.txt", "../b.txt", "escapes output root")
		assert.Equal(t, `[PATH] invalid destination "../b.txt" for "a/b.txt": escapes output root`, err.Error())
		assert.Equal(t, "a/b.txt", err.Details["source"])
		assert.Equal(t, "../b.txt", err.Details["dest"])
	})

	t.Run("collision error names both sources", func(t *testing.T) {
		err := errors.CollisionError("b/f.css", "a/x/f.css", "a/y/f.css")
		require.True(t, errors.IsErrorCode(err, errors.ErrCollision))
		assert.Equal(t, []string{"a/x/f.css", "a/y/f.css"}, err.Details["sources"])
		assert.Equal(t, "b/f.css", err.Details["dest"])
	})

	t.Run("not found error", func(t *testing.T) {
		err := errors.NotFoundError("missing/")
		assert.ErrorIs(t, err, errors.New(errors.ErrNotFound, ""))
		assert.Equal(t, "missing/", err.Details["spec"])
	})
}
