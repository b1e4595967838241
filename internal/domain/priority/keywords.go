package priority

var criticalKeywords = []string{
	"critical", "urgent", "emergency", "asap", "as soon as possible",
	"immediately", "right away", "blocking", "blocker", "p0", "priority 0",
	"severity 0", "sev 0", "production down", "site down", "service down",
	"outage", "breakage", "broken", "not working", "down",
}

var highKeywords = []string{
	"high priority", "important", "soon", "quickly", "fast", "p1",
	"priority 1", "severity 1", "sev 1", "before release", "for release",
	"release blocker", "must have", "required", "necessary", "essential",
}

var mediumKeywords = []string{
	"medium priority", "normal", "standard", "p2", "priority 2",
	"should have", "nice to have",
}

var lowKeywords = []string{
	"low priority", "whenever", "eventually", "later", "p3", "priority 3",
	"p4", "priority 4", "backlog", "future", "optional", "if time permits",
}

var criticalContext = []string{
	"blocking users", "users cannot", "users can't", "users are unable",
	"preventing access", "preventing login", "preventing signup",
	"preventing checkout", "preventing payment", "data loss",
	"security issue", "security vulnerability", "security breach",
	"privacy issue", "compliance issue", "legal issue", "regulatory",
	"production issue", "live issue", "customer facing", "revenue impact",
	"financial impact", "money loss", "revenue loss",
}

var highContext = []string{
	"before release", "for release", "release blocker", "release critical",
	"launch blocker", "launch critical", "deadline approaching",
	"upcoming deadline", "time sensitive", "customer request",
	"client request", "stakeholder request", "executive request",
	"management request", "feature request", "user request",
	"performance issue", "performance problem", "scalability issue",
	"user experience", "ux issue",
}

var lowContext = []string{
	"nice to have", "if time permits", "when we have time",
	"future enhancement", "future improvement", "optimization",
	"refactoring", "cleanup", "documentation", "code cleanup",
	"technical debt",
}
