package status

// Icon identifies the glyph class shown next to a task status.
type Icon int

const (
	IconClock Icon = iota
	IconActivity
	IconCheck
	IconAlert
)

// Category buckets a task status for dashboard counters and filters.
// Every recognized status belongs to exactly one category; anything
// unrecognized maps to CategoryNone.
type Category int

const (
	CategoryNone Category = iota
	CategoryPending
	CategoryInProgress
	CategoryCompleted
	CategoryFailed
)

// String returns the stable machine name of the category.
func (c Category) String() string {
	switch c {
	case CategoryPending:
		return "pending"
	case CategoryInProgress:
		return "in_progress"
	case CategoryCompleted:
		return "completed"
	case CategoryFailed:
		return "failed"
	default:
		return "none"
	}
}

// Variant names the badge rendering style used by the theme package.
type Variant string

const (
	VariantNeutral Variant = "neutral"
	VariantInfo    Variant = "info"
	VariantActive  Variant = "active"
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
)

// Badge describes how a status pill is rendered.
type Badge struct {
	Variant Variant
	// Color is a theme color name resolved by theme.BadgeStyle.
	Color string
	// Label is the short display text (the product ships Chinese labels).
	Label string
}

// Derived is the full set of display attributes computed from a raw
// status string. It is what list rows, detail headers, and dashboard
// cards render; nothing here is authoritative state.
type Derived struct {
	// Progress is a percentage in [0,100].
	Progress int
	Icon     Icon
	Badge    Badge
	// Text is the long human-readable status description.
	Text     string
	Category Category
}

// Task status codes reported by the backend pipeline.
const (
	StatusSubmitted     = "submitted"
	StatusCodePulling   = "code_pulling"
	StatusBranchCreated = "branch_created"
	StatusAIGenerating  = "ai_generating"
	StatusTestReady     = "test_ready"
	StatusTesting       = "testing"
	StatusTestCompleted = "test_completed"
	StatusCodePushed    = "code_pushed"
	StatusCodeSubmitted = "code_submitted"
	StatusUnderReview   = "under_review"
	StatusApproved      = "approved"
	StatusDeployed      = "deployed"
	StatusRejected      = "rejected"

	// Pre-pipeline aliases still emitted for tasks created before the
	// workflow engine migration.
	StatusLegacyCompleted  = "completed"
	StatusLegacyInProgress = "in-progress"
	StatusLegacyFailed     = "failed"
)

// unknown is the safe degradation for any unrecognized status string.
var unknown = Derived{
	Progress: 0,
	Icon:     IconClock,
	Badge:    Badge{Variant: VariantNeutral, Color: "gray", Label: "未知"},
	Text:     "未知状态",
	Category: CategoryNone,
}

// Unknown returns the neutral mapping used for unrecognized statuses.
func Unknown() Derived { return unknown }

// Vocabulary selects which status mapping table is in effect. The
// pipeline originally exposed a fine-grained 13-state vocabulary; the
// current product surface uses a simplified one. Both remain supported
// so mixed-version backends render correctly.
type Vocabulary int

const (
	// VocabularySimplified is the 5-state mapping used by current pages.
	VocabularySimplified Vocabulary = iota
	// VocabularyLegacy is the fine-grained per-pipeline-step mapping.
	VocabularyLegacy
)

// ParseVocabulary maps a config string to a Vocabulary, defaulting to
// the simplified one.
func ParseVocabulary(s string) Vocabulary {
	if s == "legacy" {
		return VocabularyLegacy
	}
	return VocabularySimplified
}

// String returns the canonical config value for the vocabulary, the
// form ParseVocabulary accepts back.
func (v Vocabulary) String() string {
	if v == VocabularyLegacy {
		return "legacy"
	}
	return "simplified"
}

var simplified = map[string]Derived{
	StatusSubmitted: {
		Progress: 20,
		Icon:     IconClock,
		Badge:    Badge{Variant: VariantInfo, Color: "blue", Label: "已提交"},
		Text:     "任务已提交，等待处理",
		Category: CategoryPending,
	},
	StatusAIGenerating: {
		Progress: 40,
		Icon:     IconActivity,
		Badge:    Badge{Variant: VariantActive, Color: "yellow", Label: "生成中"},
		Text:     "AI正在生成代码",
		Category: CategoryInProgress,
	},
	StatusTestReady: {
		Progress: 40,
		Icon:     IconActivity,
		Badge:    Badge{Variant: VariantActive, Color: "yellow", Label: "待测试"},
		Text:     "代码生成完成，等待测试",
		Category: CategoryInProgress,
	},
	StatusCodeSubmitted: {
		Progress: 60,
		Icon:     IconActivity,
		Badge:    Badge{Variant: VariantActive, Color: "orange", Label: "已提交代码"},
		Text:     "代码已提交",
		Category: CategoryInProgress,
	},
	StatusUnderReview: {
		Progress: 80,
		Icon:     IconActivity,
		Badge:    Badge{Variant: VariantActive, Color: "magenta", Label: "审核中"},
		Text:     "管理员审核中",
		Category: CategoryInProgress,
	},
	StatusApproved: {
		Progress: 90,
		Icon:     IconCheck,
		Badge:    Badge{Variant: VariantSuccess, Color: "green", Label: "审核通过"},
		Text:     "审核通过，等待部署",
		Category: CategoryInProgress,
	},
	StatusDeployed: {
		Progress: 100,
		Icon:     IconCheck,
		Badge:    Badge{Variant: VariantSuccess, Color: "green", Label: "部署完成"},
		Text:     "API已成功部署",
		Category: CategoryCompleted,
	},
	StatusRejected: {
		Progress: 0,
		Icon:     IconAlert,
		Badge:    Badge{Variant: VariantDanger, Color: "red", Label: "已拒绝"},
		Text:     "审核未通过",
		Category: CategoryFailed,
	},
}

// legacySteps lists the fine-grained pipeline statuses in execution
// order. Progress is monotonic over this order, 0 at submitted and 100
// at deployed.
var legacySteps = []struct {
	status string
	icon   Icon
	label  string
	text   string
	cat    Category
}{
	{StatusSubmitted, IconClock, "已提交", "任务已提交到系统", CategoryPending},
	{StatusCodePulling, IconActivity, "拉取代码", "从代码仓库拉取基础代码", CategoryInProgress},
	{StatusBranchCreated, IconActivity, "分支已创建", "已创建专用开发分支", CategoryInProgress},
	{StatusAIGenerating, IconActivity, "生成中", "AI正在根据需求生成代码", CategoryInProgress},
	{StatusTestReady, IconActivity, "测试准备", "代码生成完成，准备进行测试", CategoryInProgress},
	{StatusTesting, IconActivity, "测试中", "正在执行自动化测试", CategoryInProgress},
	{StatusTestCompleted, IconActivity, "测试完成", "所有测试已通过", CategoryInProgress},
	{StatusCodePushed, IconActivity, "代码已推送", "代码已推送到仓库", CategoryInProgress},
	{StatusUnderReview, IconActivity, "审核中", "代码正在接受人工审查", CategoryInProgress},
	{StatusApproved, IconCheck, "审核通过", "代码审查已通过", CategoryInProgress},
	{StatusDeployed, IconCheck, "已完成", "API已成功部署到生产环境", CategoryCompleted},
}

var legacy = buildLegacy()

func buildLegacy() map[string]Derived {
	m := make(map[string]Derived, len(legacySteps)+4)

	last := len(legacySteps) - 1
	for i, s := range legacySteps {
		variant := VariantActive
		color := "yellow"
		switch s.cat {
		case CategoryPending:
			variant, color = VariantInfo, "blue"
		case CategoryCompleted:
			variant, color = VariantSuccess, "green"
		}
		if s.status == StatusApproved {
			variant, color = VariantSuccess, "green"
		}
		m[s.status] = Derived{
			Progress: i * 100 / last,
			Icon:     s.icon,
			Badge:    Badge{Variant: variant, Color: color, Label: s.label},
			Text:     s.text,
			Category: s.cat,
		}
	}

	m[StatusRejected] = Derived{
		Progress: 0,
		Icon:     IconAlert,
		Badge:    Badge{Variant: VariantDanger, Color: "red", Label: "已拒绝"},
		Text:     "审核拒绝，请查看管理员意见",
		Category: CategoryFailed,
	}
	m[StatusLegacyCompleted] = Derived{
		Progress: 100,
		Icon:     IconCheck,
		Badge:    Badge{Variant: VariantSuccess, Color: "green", Label: "已完成"},
		Text:     "任务已完成",
		Category: CategoryCompleted,
	}
	m[StatusLegacyInProgress] = Derived{
		Progress: 50,
		Icon:     IconActivity,
		Badge:    Badge{Variant: VariantActive, Color: "yellow", Label: "进行中"},
		Text:     "任务处理中",
		Category: CategoryInProgress,
	}
	m[StatusLegacyFailed] = Derived{
		Progress: 0,
		Icon:     IconAlert,
		Badge:    Badge{Variant: VariantDanger, Color: "red", Label: "失败"},
		Text:     "任务处理失败",
		Category: CategoryFailed,
	}

	return m
}

// Map resolves a raw status string to its display attributes under the
// given vocabulary. The input is untrusted; anything outside the
// recognized set degrades to the neutral unknown mapping. Map never
// panics.
func (v Vocabulary) Map(status string) Derived {
	var d Derived
	var ok bool
	switch v {
	case VocabularyLegacy:
		d, ok = legacy[status]
	default:
		d, ok = simplified[status]
	}
	if !ok {
		return unknown
	}
	return d
}

// Progress is shorthand for Map(status).Progress.
func (v Vocabulary) Progress(status string) int {
	return v.Map(status).Progress
}

// Categorize is shorthand for Map(status).Category.
func (v Vocabulary) Categorize(status string) Category {
	return v.Map(status).Category
}

// Recognized returns all status codes the vocabulary knows about.
// Order is unspecified.
func (v Vocabulary) Recognized() []string {
	var m map[string]Derived
	if v == VocabularyLegacy {
		m = legacy
	} else {
		m = simplified
	}
	out := make([]string, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	return out
}

// Tally counts the given statuses by category. Unrecognized statuses
// land in CategoryNone so callers can surface them instead of silently
// dropping rows.
func (v Vocabulary) Tally(statuses []string) map[Category]int {
	counts := make(map[Category]int)
	for _, s := range statuses {
		counts[v.Categorize(s)]++
	}
	return counts
}

// IsTerminal reports whether the status ends the pipeline: the task is
// either deployed or rejected and will not move again without operator
// intervention.
func IsTerminal(status string) bool {
	switch status {
	case StatusDeployed, StatusRejected, StatusLegacyCompleted, StatusLegacyFailed:
		return true
	}
	return false
}
