package report

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/devicelab-dev/uireport/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	root := filepath.Join(t.TempDir(), "screenshots")
	writeRun(t, root, "chrome_20240101_000000",
		"登录用例1_输入正确用户名.png",
		"登录用例1_登出操作.png",
	)
	cat := catalog.Default()
	data := NewAssembler(chromeLocator(cat, root)).Build(cat, testMeta())

	md, err := RenderMarkdown(data)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# Chrome UI Test Report\n"))
	assert.Contains(t, md, "- Test run: **PASSED**")
	assert.Contains(t, md, "| TC001 | 登录用例1：正确用户名和密码登录 | - | 2 / 5 |")
	assert.Contains(t, md, "| TC007 | 异常用例4：StaleElementReferenceException | StaleElementReferenceException | 0 / 3 |")
	assert.Contains(t, md, "| 登录用例1_登出操作 | `screenshots/chrome_20240101_000000/登录用例1_登出操作.png` | 3 B |")
	assert.Equal(t, cat.Len()-1, strings.Count(md, "Expected screenshots (not yet generated)"))
	assert.Contains(t, md, "- `异常用例4_说明文字消失.png`")
	assert.Contains(t, md, "1. 打开登录页面")
}

func TestMdCell(t *testing.T) {
	assert.Equal(t, `a \| b c`, mdCell("a | b\nc"))
}
