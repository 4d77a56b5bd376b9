package recommend

import "github.com/jonathan/career-analyzer/internal/types"

// jobTemplate is one row of the static skill table. Score is 0..100.
type jobTemplate struct {
	Job    string
	Score  float64
	Reason string
}

type skillJobs struct {
	key  string
	jobs []jobTemplate
}

// skillTable is scanned in order, so earlier keys win partial matches.
var skillTable = []skillJobs{
	// Programming languages and frameworks
	{"python", []jobTemplate{
		{"Python Developer", 95, "Core Python programming expertise"},
		{"Backend Developer", 90, "Server-side development with Python"},
		{"Data Scientist", 85, "Python for data analysis and ML"},
	}},
	{"javascript", []jobTemplate{
		{"JavaScript Developer", 95, "Core JavaScript programming skills"},
		{"Frontend Developer", 90, "Essential for frontend development"},
		{"Full Stack Developer", 85, "Used across the full technology stack"},
	}},
	{"java", []jobTemplate{
		{"Java Developer", 95, "Enterprise Java development"},
		{"Backend Developer", 90, "Server-side Java applications"},
		{"Software Engineer", 85, "Large-scale software development"},
	}},
	{"react", []jobTemplate{
		{"React Developer", 95, "Direct React framework expertise"},
		{"Frontend Developer", 90, "Modern frontend development with React"},
		{"Full Stack Developer", 80, "Frontend-heavy full-stack roles"},
	}},
	{"node.js", []jobTemplate{
		{"Node.js Developer", 95, "Server-side JavaScript expertise"},
		{"Backend Developer", 90, "Modern backend development"},
		{"Full Stack Developer", 85, "JavaScript across the stack"},
	}},
	{"angular", []jobTemplate{
		{"Angular Developer", 95, "Direct Angular framework skills"},
		{"Frontend Developer", 90, "Enterprise frontend development"},
		{"Web Developer", 85, "Web application development"},
	}},
	{"vue", []jobTemplate{
		{"Vue.js Developer", 95, "Vue.js framework specialization"},
		{"Frontend Developer", 90, "Progressive frontend development"},
		{"Web Developer", 85, "Modern web applications"},
	}},
	{"typescript", []jobTemplate{
		{"TypeScript Developer", 95, "Specialized TypeScript expertise"},
		{"Frontend Developer", 90, "Modern frontend with type safety"},
		{"Software Engineer", 85, "Enterprise-level development"},
	}},
	{"c#", []jobTemplate{
		{"C# Developer", 95, ".NET framework development"},
		{".NET Developer", 92, "Microsoft technology stack"},
		{"Software Engineer", 85, "Enterprise software development"},
	}},
	{"php", []jobTemplate{
		{"PHP Developer", 95, "PHP web development expertise"},
		{"Backend Developer", 90, "Server-side web development"},
		{"Web Developer", 85, "Dynamic web applications"},
	}},

	// Data and AI
	{"machine learning", []jobTemplate{
		{"Machine Learning Engineer", 95, "Direct ML model development"},
		{"Data Scientist", 90, "ML for data insights and predictions"},
		{"AI Engineer", 85, "Artificial intelligence applications"},
	}},
	{"data science", []jobTemplate{
		{"Data Scientist", 95, "Core data science expertise"},
		{"Data Analyst", 90, "Data analysis and insights"},
		{"Business Intelligence Analyst", 80, "Business-focused data analysis"},
	}},
	{"sql", []jobTemplate{
		{"Data Analyst", 90, "Database querying and analysis"},
		{"Database Administrator", 85, "Database management and optimization"},
		{"Backend Developer", 75, "Database integration in applications"},
	}},
	{"tensorflow", []jobTemplate{
		{"Machine Learning Engineer", 95, "TensorFlow ML framework expertise"},
		{"Deep Learning Engineer", 92, "Neural network development"},
		{"AI Research Scientist", 85, "AI research and development"},
	}},
	{"pytorch", []jobTemplate{
		{"Machine Learning Engineer", 95, "PyTorch deep learning framework"},
		{"Deep Learning Engineer", 92, "Advanced neural networks"},
		{"Research Scientist", 85, "ML research and experimentation"},
	}},

	// Cloud and DevOps
	{"aws", []jobTemplate{
		{"Cloud Engineer", 95, "AWS cloud platform expertise"},
		{"DevOps Engineer", 90, "Cloud infrastructure and deployment"},
		{"Cloud Architect", 85, "Cloud solution design"},
	}},
	{"azure", []jobTemplate{
		{"Cloud Engineer", 95, "Microsoft Azure cloud platform"},
		{"Azure Developer", 92, "Azure-specific development"},
		{"Cloud Architect", 85, "Azure solution architecture"},
	}},
	{"docker", []jobTemplate{
		{"DevOps Engineer", 90, "Containerization and deployment"},
		{"Cloud Engineer", 85, "Container orchestration"},
		{"Software Engineer", 75, "Modern development practices"},
	}},
	{"kubernetes", []jobTemplate{
		{"DevOps Engineer", 95, "Container orchestration expertise"},
		{"Cloud Engineer", 90, "Scalable cloud deployments"},
		{"Platform Engineer", 85, "Platform infrastructure management"},
	}},

	// Mobile
	{"react native", []jobTemplate{
		{"React Native Developer", 95, "Cross-platform mobile development"},
		{"Mobile Developer", 90, "Mobile app development"},
		{"Frontend Developer", 75, "React-based development"},
	}},
	{"swift", []jobTemplate{
		{"iOS Developer", 95, "Native iOS app development"},
		{"Mobile Developer", 90, "Apple ecosystem development"},
		{"App Developer", 85, "Mobile application development"},
	}},
	{"kotlin", []jobTemplate{
		{"Android Developer", 95, "Modern Android development"},
		{"Mobile Developer", 90, "Android app development"},
		{"Software Engineer", 75, "JVM-based development"},
	}},

	// Design
	{"figma", []jobTemplate{
		{"UI/UX Designer", 95, "Modern design tool proficiency"},
		{"Product Designer", 90, "Digital product design"},
		{"Visual Designer", 85, "Interface and visual design"},
	}},
	{"photoshop", []jobTemplate{
		{"Graphic Designer", 95, "Professional image editing skills"},
		{"Visual Designer", 90, "Creative visual content"},
		{"UI Designer", 75, "User interface graphics"},
	}},
	{"sketch", []jobTemplate{
		{"UI/UX Designer", 92, "Interface design tool expertise"},
		{"Product Designer", 88, "Digital product interfaces"},
		{"Visual Designer", 80, "Visual design creation"},
	}},

	// Business and management
	{"project management", []jobTemplate{
		{"Project Manager", 95, "Project planning and execution"},
		{"Program Manager", 90, "Multi-project coordination"},
		{"Scrum Master", 85, "Agile project management"},
	}},
	{"business analysis", []jobTemplate{
		{"Business Analyst", 95, "Requirements analysis and optimization"},
		{"Systems Analyst", 90, "System requirements and design"},
		{"Product Manager", 80, "Product strategy and analysis"},
	}},
	{"digital marketing", []jobTemplate{
		{"Digital Marketing Manager", 95, "Online marketing strategy"},
		{"Marketing Analyst", 88, "Marketing data analysis"},
		{"Content Marketing Manager", 82, "Digital content strategy"},
	}},
}

func path(stages ...types.LearningStage) types.LearningPath { return stages }

func stage(level string, skills ...string) types.LearningStage {
	return types.LearningStage{Level: level, Skills: skills}
}

// learningPaths holds curated paths keyed by exact job title.
var learningPaths = map[string]types.LearningPath{
	"Python Developer": path(
		stage("core_skills", "Python", "Object-Oriented Programming", "Data Structures"),
		stage("frameworks", "Django", "Flask", "FastAPI"),
		stage("tools", "Git", "Docker", "Testing (pytest)", "Virtual Environments"),
		stage("databases", "PostgreSQL", "SQLite", "Redis"),
		stage("additional", "REST APIs", "Code Documentation", "Deployment"),
	),
	"Frontend Developer": path(
		stage("core_skills", "HTML", "CSS", "JavaScript", "Responsive Design"),
		stage("frameworks", "React", "Vue.js", "Angular"),
		stage("tools", "Webpack", "NPM/Yarn", "Git", "Browser DevTools"),
		stage("styling", "Sass/SCSS", "Tailwind CSS", "CSS Grid/Flexbox"),
		stage("additional", "Performance Optimization", "Accessibility", "Testing"),
	),
	"Data Scientist": path(
		stage("core_skills", "Python", "Statistics", "Machine Learning", "Data Analysis"),
		stage("libraries", "Pandas", "NumPy", "Scikit-learn", "Matplotlib"),
		stage("tools", "Jupyter Notebooks", "Git", "SQL", "Excel"),
		stage("ml_frameworks", "TensorFlow", "PyTorch", "XGBoost"),
		stage("additional", "Data Visualization", "Feature Engineering", "Model Deployment"),
	),
	"Machine Learning Engineer": path(
		stage("core_skills", "Machine Learning", "Python", "Statistics", "Mathematics"),
		stage("frameworks", "TensorFlow", "PyTorch", "Scikit-learn"),
		stage("tools", "MLflow", "Docker", "Kubernetes", "Git"),
		stage("cloud", "AWS SageMaker", "Google Cloud AI", "Azure ML"),
		stage("additional", "Model Optimization", "Data Pipelines", "Production Deployment"),
	),
	"DevOps Engineer": path(
		stage("core_skills", "Linux", "Networking", "Scripting", "System Administration"),
		stage("tools", "Docker", "Kubernetes", "Jenkins", "Git"),
		stage("cloud", "AWS", "Azure", "Google Cloud"),
		stage("monitoring", "Prometheus", "Grafana", "ELK Stack"),
		stage("additional", "Infrastructure as Code", "CI/CD", "Security"),
	),
	"Full Stack Developer": path(
		stage("frontend", "HTML", "CSS", "JavaScript", "React/Vue/Angular"),
		stage("backend", "Node.js/Python/Java", "REST APIs", "Databases"),
		stage("tools", "Git", "Docker", "Testing Frameworks"),
		stage("databases", "PostgreSQL", "MongoDB", "Redis"),
		stage("additional", "Authentication", "Deployment", "Performance"),
	),
	"UI/UX Designer": path(
		stage("design_tools", "Figma", "Sketch", "Adobe XD"),
		stage("skills", "User Research", "Wireframing", "Prototyping"),
		stage("principles", "Design Systems", "Accessibility", "Typography"),
		stage("testing", "Usability Testing", "A/B Testing"),
		stage("additional", "HTML/CSS Basics", "Design Thinking", "Collaboration"),
	),
	"Cloud Engineer": path(
		stage("platforms", "AWS", "Azure", "Google Cloud"),
		stage("core_skills", "Networking", "Security", "Infrastructure"),
		stage("tools", "Terraform", "Docker", "Kubernetes"),
		stage("monitoring", "CloudWatch", "Azure Monitor", "Stackdriver"),
		stage("additional", "Cost Optimization", "Automation", "Compliance"),
	),
}
