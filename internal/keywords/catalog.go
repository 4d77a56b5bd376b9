package keywords

import (
	"regexp"

	"github.com/jonathan/career-analyzer/internal/types"
)

// categoryPatterns is one catalog category and its compiled alternations.
// Within an alternation, longer spellings come first so that leftmost-first
// matching does not stop at a shorter prefix ("JavaScript" before "Java").
type categoryPatterns struct {
	category types.KeywordCategory
	patterns []*regexp.Regexp
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?im)` + e)
	}
	return out
}

// catalog is read-only after package initialization.
var catalog = []categoryPatterns{
	{
		category: types.CategoryProgrammingLanguages,
		patterns: compile(
			`JavaScript|TypeScript|Python|Java|Kotlin|Scala|Swift|Ruby|PHP|Perl|Rust|Golang|Haskell|Elixir|Erlang|Clojure|Dart|Lua|Julia|MATLAB|Groovy|Objective-C|Fortran|COBOL`,
			`C\+\+|C#|F#|VB\.NET|Visual Basic`,
			`PL/SQL|T-SQL|SQL|Bash|Shell Scripting|PowerShell|HTML5?|CSS3?|SCSS|Sass`,
		),
	},
	{
		category: types.CategoryFrameworksLibraries,
		patterns: compile(
			`React Native|React(?:\.js)?|AngularJS|Angular|Vue(?:\.js)?|Svelte|Next\.js|Nuxt\.js|jQuery|Redux|Tailwind CSS|Bootstrap`,
			`Node\.js|Express\.js|Django|Flask|FastAPI|Spring Boot|Spring Framework|Ruby on Rails|Laravel|ASP\.NET|\.NET Core|\.NET`,
			`TensorFlow|PyTorch|Keras|scikit-learn|Pandas|NumPy|SciPy|Matplotlib|OpenCV|Hugging Face|LangChain|PySpark|Apache Spark|Hadoop`,
			`JUnit|pytest|Jest|Mocha|Selenium|Cypress|Playwright`,
		),
	},
	{
		category: types.CategoryDatabasesTools,
		patterns: compile(
			`PostgreSQL|Postgres|MySQL|MariaDB|SQLite|SQL Server|MongoDB|Redis|Cassandra|DynamoDB|Elasticsearch|Neo4j|Snowflake|BigQuery|Firebase`,
			`Docker|Kubernetes|K8s|Helm|Terraform|Ansible|Jenkins|GitHub Actions|GitHub|GitLab CI|GitLab|Git|Bitbucket|Jira|Confluence|Prometheus|Grafana|Kafka|RabbitMQ|Nginx|Linux`,
			`Amazon Web Services|AWS|Microsoft Azure|Azure|Google Cloud Platform|Google Cloud|GCP|Heroku|CloudFormation|EC2|S3`,
			`Tableau|Power BI|Excel|Looker|Figma|Photoshop|Illustrator|Postman|VS Code|IntelliJ`,
		),
	},
	{
		category: types.CategoryCertifications,
		patterns: compile(
			`AWS\s+Certified\s+(?:Solutions\s+Architect|Developer|SysOps\s+Administrator|Cloud\s+Practitioner|DevOps\s+Engineer)(?:\s*[-–]\s*(?:Associate|Professional))?`,
			`Microsoft\s+Certified:?\s+Azure\s+(?:Fundamentals|Administrator\s+Associate|Developer\s+Associate|Solutions\s+Architect\s+Expert|Data\s+Engineer\s+Associate)|AZ-\d{3}|DP-\d{3}`,
			`Google\s+Cloud\s+(?:Certified\s+)?Professional\s+(?:Cloud\s+Architect|Data\s+Engineer|Cloud\s+Developer)|Certified\s+Kubernetes\s+(?:Administrator|Application\s+Developer|Security\s+Specialist)|CKAD|CKA|CKS`,
			`PMP|CAPM|PRINCE2|Certified\s+ScrumMaster|CSM|PSM\s+I{1,3}|SAFe\s+Agilist|CompTIA\s+(?:A\+|Network\+|Security\+|Cloud\+|Linux\+)|CISSP|CISM|CISA|CEH|OSCP|CCNA|CCNP|CCIE|RHCSA|RHCE`,
		),
	},
	{
		category: types.CategoryEducation,
		patterns: compile(
			`Bachelor(?: ?s)?(?:\s+(?:of|in)\s+(?:Science|Arts|Engineering|Technology|Computer\s+Science))?|Master(?: ?s)?\s+(?:of|in)\s+(?:Science|Arts|Business\s+Administration|Engineering|Computer\s+Science)|Master(?: ?s)?\s+degree|Associate(?: ?s)?\s+degree`,
			`Ph\.?D\.?|Doctorate|MBA|B\.Sc\.?|M\.Sc\.?|B\.Tech|M\.Tech|B\.S\.|M\.S\.`,
			`Computer Science|Software Engineering|Information Technology|Electrical Engineering|Mechanical Engineering|Data Science|Mathematics|Statistics|Physics|Economics`,
			`University|College|Institute of Technology|Bootcamp|Coursera|Udemy|edX`,
		),
	},
	{
		category: types.CategoryMethodologies,
		patterns: compile(
			`Agile|Scrum|Kanban|Lean|Six Sigma|Waterfall|SAFe|Extreme Programming`,
			`DevSecOps|DevOps|MLOps|CI/CD|Continuous Integration|Continuous Delivery|Continuous Deployment|Test-Driven Development|TDD|Behavior-Driven Development|BDD|Domain-Driven Design|DDD|Pair Programming|Code Review`,
			`Microservices|RESTful|REST APIs?|GraphQL|gRPC|Event-Driven Architecture|Serverless|Object-Oriented Programming|OOP|Functional Programming|Design Patterns`,
		),
	},
	{
		category: types.CategoryCompanies,
		patterns: compile(
			`Google|Microsoft|Amazon|Apple|Meta|Facebook|Netflix|IBM|Oracle|Intel|NVIDIA|Salesforce|Adobe|SAP|Cisco|Uber|Airbnb|Twitter|LinkedIn|Spotify|Stripe|Shopify|Tesla`,
			`Accenture|Deloitte|McKinsey|Infosys|TCS|Wipro|Capgemini`,
		),
	},
}

// Categories returns the catalog categories in scan order.
func Categories() []types.KeywordCategory {
	out := make([]types.KeywordCategory, len(catalog))
	for i, c := range catalog {
		out[i] = c.category
	}
	return out
}
