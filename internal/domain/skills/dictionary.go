package skills

// Skill is a canonical skill and the phrases that indicate it in task text.
type Skill struct {
	Name     string
	Keywords []string
}

// dictionary lists the canonical skills in discovery order.
var dictionary = []Skill{
	{Name: "React", Keywords: []string{"react", "react.js", "reactjs", "frontend component", "react component"}},
	{Name: "JavaScript", Keywords: []string{"javascript", "js code", "js bug", "script error"}},
	{Name: "UI bugs", Keywords: []string{"ui bug", "alignment issue", "button not visible", "frontend bug", "layout issue"}},
	{Name: "Frontend", Keywords: []string{"frontend", "ui", "user interface", "screen design"}},
	{Name: "Backend", Keywords: []string{"backend", "server side", "api bug", "business logic"}},
	{Name: "Node.js", Keywords: []string{"node", "node.js", "nodejs", "express route"}},
	{Name: "Databases", Keywords: []string{"database", "db", "query", "sql", "mongo", "mongodb"}},
	{Name: "API design", Keywords: []string{"api", "endpoint", "rest", "http request"}},
	{Name: "Testing", Keywords: []string{"testing", "test case", "testcases", "qa", "quality check"}},
	{Name: "Automation", Keywords: []string{"automation", "automated tests", "selenium", "cypress"}},
	{Name: "Bug tracking", Keywords: []string{"bug tracking", "jira", "ticket", "issue tracking"}},
	{Name: "UI/UX", Keywords: []string{"ui/ux", "ux", "user experience", "wireframe", "prototype"}},
	{Name: "Figma", Keywords: []string{"figma", "design file", "figma screen"}},
}
