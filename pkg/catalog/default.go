package catalog

import "github.com/devicelab-dev/uireport/pkg/core"

const (
	loginURL      = "https://practicetestautomation.com/practice-test-login/"
	exceptionsURL = "https://practicetestautomation.com/practice-test-exceptions/"
)

// Default returns the built-in catalog: three login scenarios and five
// exception-handling scenarios against the practice site.
func Default() *Catalog {
	return New(defaultCases()...)
}

func defaultCases() []TestCase {
	return []TestCase{
		{
			ID:          "TC001",
			Name:        "登录用例1：正确用户名和密码登录",
			Description: "使用正确的用户名 student 和密码 Password123 登录，验证登录成功后可以正常登出。",
			Steps: []string{
				"打开登录页面 " + loginURL,
				"在用户名输入框输入 student",
				"在密码输入框输入 Password123",
				"点击 Submit 按钮",
				"验证新页面 URL 包含 practicetestautomation.com/logged-in-successfully/",
				"验证页面包含 Congratulations 或 successfully logged in 文本",
				"点击 Log out 按钮",
			},
			ExpectedResult: "登录成功，显示欢迎信息和 Log out 按钮，登出后返回登录页面",
			Patterns: []string{
				"登录用例1_打开登录页",
				"登录用例1_输入正确用户名",
				"登录用例1_输入正确密码",
				"登录用例1_登录成功",
				"登录用例1_登出操作",
			},
			ExpectedScreenshots: []string{
				"登录用例1_打开登录页.png",
				"登录用例1_输入正确用户名.png",
				"登录用例1_输入正确密码.png",
				"登录用例1_登录成功.png",
				"登录用例1_登出操作.png",
			},
		},
		{
			ID:          "TC002",
			Name:        "登录用例2：错误用户名登录",
			Description: "使用不存在的用户名 incorrectUser 登录，验证错误提示。",
			Steps: []string{
				"打开登录页面 " + loginURL,
				"在用户名输入框输入 incorrectUser",
				"在密码输入框输入 Password123",
				"点击 Submit 按钮",
				"验证错误提示信息显示",
				"验证错误提示文本为 Your username is invalid!",
			},
			ExpectedResult: "显示错误提示 Your username is invalid!",
			Patterns: []string{
				"登录用例2_打开登录页",
				"登录用例2_输入错误用户名",
				"登录用例2_错误提示",
			},
			ExpectedScreenshots: []string{
				"登录用例2_打开登录页.png",
				"登录用例2_输入错误用户名.png",
				"登录用例2_错误提示.png",
			},
		},
		{
			ID:          "TC003",
			Name:        "登录用例3：错误密码登录",
			Description: "使用正确用户名和错误密码 incorrectPassword 登录，验证错误提示。",
			Steps: []string{
				"打开登录页面 " + loginURL,
				"在用户名输入框输入 student",
				"在密码输入框输入 incorrectPassword",
				"点击 Submit 按钮",
				"验证错误提示信息显示",
				"验证错误提示文本为 Your password is invalid!",
			},
			ExpectedResult: "显示错误提示 Your password is invalid!",
			Patterns: []string{
				"登录用例3_打开登录页",
				"登录用例3_输入错误密码",
				"登录用例3_错误提示",
			},
			ExpectedScreenshots: []string{
				"登录用例3_打开登录页.png",
				"登录用例3_输入错误密码.png",
				"登录用例3_错误提示.png",
			},
		},
		{
			ID:          "TC004",
			Name:        "异常用例1：NoSuchElementException",
			Description: "点击 Add 按钮后立即查找第二行输入框，第二行 5 秒后才出现，未等待时元素不存在。",
			Steps: []string{
				"打开异常测试页面 " + exceptionsURL,
				"点击 Add 按钮",
				"验证第二行输入框显示（使用显式等待避免 NoSuchElementException）",
			},
			ExpectedResult: "等待后第二行输入框出现；未等待时抛出 NoSuchElementException",
			Exception:      core.ExceptionElementNotFound,
			Patterns: []string{
				"异常用例1_点击添加按钮",
				"异常用例1_第二行出现",
			},
			ExpectedScreenshots: []string{
				"异常用例1_点击添加按钮.png",
				"异常用例1_第二行出现.png",
			},
		},
		{
			ID:          "TC005",
			Name:        "异常用例2：ElementNotInteractableException",
			Description: "第二行出现后向其输入文本并点击保存，保存按钮定位不准确时元素不可交互。",
			Steps: []string{
				"打开异常测试页面 " + exceptionsURL,
				"点击 Add 按钮并等待第二行出现",
				"在第二行输入框输入文本",
				"点击第二行的 Save 按钮（点击隐藏的第一行 Save 按钮会抛出 ElementNotInteractableException）",
				"验证保存成功提示",
			},
			ExpectedResult: "文本保存成功并显示 Row 2 was saved",
			Exception:      core.ExceptionElementNotInteractable,
			Patterns: []string{
				"异常用例2_第二行出现",
				"异常用例2_输入文本",
				"异常用例2_保存成功",
			},
			ExpectedScreenshots: []string{
				"异常用例2_第二行出现.png",
				"异常用例2_输入文本.png",
				"异常用例2_保存成功.png",
			},
		},
		{
			ID:          "TC006",
			Name:        "异常用例3：InvalidElementStateException",
			Description: "第一行输入框默认禁用，直接清空会触发元素状态异常，需先点击 Edit。",
			Steps: []string{
				"打开异常测试页面 " + exceptionsURL,
				"直接清空第一行输入框（抛出 InvalidElementStateException）",
				"点击 Edit 按钮启用输入框",
				"清空输入框并输入新文本",
				"点击 Save 并验证文本已修改",
			},
			ExpectedResult: "启用编辑后文本修改成功",
			Exception:      core.ExceptionInvalidElementState,
			Patterns: []string{
				"异常用例3_点击编辑",
				"异常用例3_输入新文本",
				"异常用例3_修改成功",
			},
			ExpectedScreenshots: []string{
				"异常用例3_点击编辑.png",
				"异常用例3_输入新文本.png",
				"异常用例3_修改成功.png",
			},
		},
		{
			ID:          "TC007",
			Name:        "异常用例4：StaleElementReferenceException",
			Description: "先定位说明文字，点击 Add 后说明文字从 DOM 中移除，再次访问旧引用时元素过期。",
			Steps: []string{
				"打开异常测试页面 " + exceptionsURL,
				"定位说明文字元素",
				"点击 Add 按钮",
				"验证说明文字不再显示（访问旧引用抛出 StaleElementReferenceException）",
			},
			ExpectedResult: "说明文字消失，旧元素引用已过期",
			Exception:      core.ExceptionStaleElementReference,
			Patterns: []string{
				"异常用例4_定位说明文字",
				"异常用例4_点击添加按钮",
				"异常用例4_说明文字消失",
			},
			ExpectedScreenshots: []string{
				"异常用例4_定位说明文字.png",
				"异常用例4_点击添加按钮.png",
				"异常用例4_说明文字消失.png",
			},
		},
		{
			ID:          "TC008",
			Name:        "异常用例5：TimeoutException",
			Description: "点击 Add 后只等待 3 秒，第二行需要约 5 秒才出现，显式等待超时。",
			Steps: []string{
				"打开异常测试页面 " + exceptionsURL,
				"点击 Add 按钮",
				"等待第二行输入框最多 3 秒（抛出 TimeoutException）",
			},
			ExpectedResult: "等待 3 秒后抛出 TimeoutException",
			Exception:      core.ExceptionTimeout,
			Patterns: []string{
				"异常用例5_点击添加按钮",
				"异常用例5_等待超时",
			},
			ExpectedScreenshots: []string{
				"异常用例5_点击添加按钮.png",
				"异常用例5_等待超时.png",
			},
		},
	}
}
