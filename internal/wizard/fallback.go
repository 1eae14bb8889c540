package wizard

import "github.com/lwang/apiforge/internal/model"

// FallbackSteps is the built-in static deployment plan used only when
// wizard.fallback_to_static is enabled and the dynamic step fetch
// fails. The default behavior is an explicit error state with a retry
// action; the static plan knows nothing about the task's actual
// generated files, so it stays opt-in.
func FallbackSteps() []model.DeploymentStep {
	return []model.DeploymentStep{
		{
			ID:          "check-connection",
			StepNumber:  1,
			Title:       "检查服务器连接",
			Description: "确认可以连接到部署服务器",
			Command:     `whoami && pwd && echo "连接正常"`,
		},
		{
			ID:            "enter-project-dir",
			StepNumber:    2,
			Title:         "进入项目目录",
			Description:   "进入（或创建）项目部署目录",
			Command:       "cd {{project_path}} || (mkdir -p {{project_path}} && cd {{project_path}})",
			RequiresInput: true,
		},
		{
			ID:          "check-python",
			StepNumber:  3,
			Title:       "检查Python环境",
			Description: "确认Python 3和pip可用",
			Command:     "python3 --version && pip3 --version",
		},
		{
			ID:            "create-app-dirs",
			StepNumber:    4,
			Title:         "创建目录结构",
			Description:   "创建项目目录结构",
			Command:       "mkdir -p app/routers app/models app/services",
			RequiresInput: false,
		},
		{
			ID:            "write-code-file",
			StepNumber:    5,
			Title:         "写入生成的代码",
			Description:   "将下载的生成代码写入到目标文件",
			Command:       "cp {{file_path}} app/{{file_name}}",
			RequiresInput: true,
		},
		{
			ID:          "write-requirements",
			StepNumber:  6,
			Title:       "创建requirements.txt",
			Description: "写入项目依赖清单",
			Command:     "cat > requirements.txt << 'EOF'\nfastapi\nuvicorn\nsqlalchemy\nEOF",
		},
		{
			ID:          "install-deps",
			StepNumber:  7,
			Title:       "安装Python依赖",
			Description: "安装requirements.txt中的依赖",
			Command:     "pip3 install -r requirements.txt",
		},
		{
			ID:          "syntax-check",
			StepNumber:  8,
			Title:       "检查代码语法",
			Description: "对生成的代码做编译级语法检查",
			Command:     `python3 -m py_compile app/**/*.py || echo "语法检查完成"`,
		},
		{
			ID:            "git-init",
			StepNumber:    9,
			Title:         "初始化Git仓库",
			Description:   "初始化仓库并配置远端",
			Command:       "git init && git remote add origin {{git_repo_url}}",
			RequiresInput: true,
		},
		{
			ID:            "git-commit",
			StepNumber:    10,
			Title:         "提交代码",
			Description:   "提交生成的代码",
			Command:       `git add . && git commit -m "{{commit_message}}"`,
			RequiresInput: true,
		},
		{
			ID:            "git-push",
			StepNumber:    11,
			Title:         "推送到远端",
			Description:   "将代码推送到Git仓库",
			Command:       "git push -u origin main",
			RequiresInput: false,
		},
		{
			ID:          "start-service",
			StepNumber:  12,
			Title:       "启动服务",
			Description: "以uvicorn启动API服务",
			Command:     "nohup uvicorn app.main:app --host 0.0.0.0 --port 8000 > service.log 2>&1 &",
		},
		{
			ID:          "verify-service",
			StepNumber:  13,
			Title:       "验证服务",
			Description: "确认API服务正常响应",
			Command:     "curl -s http://localhost:8000/docs > /dev/null && echo 部署成功",
		},
	}
}
