package entity

// DefaultSelection is the selection of a fresh builder.
func DefaultSelection() []SectionType {
	return []SectionType{SectionHero}
}

// DefaultSnapshot is the document a fresh or reset builder starts from.
func DefaultSnapshot() Snapshot {
	return Snapshot{Content: DefaultContent(), SelectedSections: DefaultSelection()}
}

// DefaultContent builds a new copy of the hard-coded defaults on every call.
func DefaultContent() PortfolioContent {
	twitter := "https://twitter.com"
	return PortfolioContent{
		Hero: HeroContent{
			Name:     "John Doe",
			Title:    "Full-Stack Developer",
			Subtitle: "UI/UX Designer",
			Description: "Full-Stack Developer & UI/UX Designer crafting beautiful, functional digital " +
				"experiences with modern technologies.",
			Avatar:              Avatar{Initials: "JD"},
			AvailableForWork:    true,
			CTAPrimary:          "View My Work",
			CTAPrimaryEnabled:   true,
			CTASecondary:        "Download CV",
			CTASecondaryEnabled: true,
			SocialLinks: HeroSocialLinks{
				GitHub:          "https://github.com",
				GitHubEnabled:   true,
				LinkedIn:        "https://linkedin.com",
				LinkedInEnabled: true,
				Email:           "john.doe@example.com",
				EmailEnabled:    true,
				Twitter:         &twitter,
				TwitterEnabled:  true,
			},
		},
		About: AboutContent{
			Title:    "About Me",
			Subtitle: "Passionate About Creating Digital Solutions",
			Description: "With over 5 years of experience in web development, I specialize in creating modern, " +
				"scalable applications that solve real-world problems. I'm passionate about clean code, user " +
				"experience, and staying up-to-date with the latest technologies.",
			Journey: []string{
				"I started my journey in web development during college, where I discovered my passion for " +
					"creating digital experiences. What began as curiosity about how websites work evolved into a " +
					"career focused on building exceptional user interfaces and robust backend systems.",
				"Today, I work with startups and established companies to bring their digital visions to life. " +
					"I believe in the power of technology to solve problems and create meaningful connections " +
					"between businesses and their users.",
				"When I'm not coding, you can find me exploring new technologies, contributing to open-source " +
					"projects, or sharing knowledge with the developer community through blog posts and mentoring.",
			},
			Skills: []Skill{
				{Name: "React/Next.js", Level: 95, Category: "Frontend"},
				{Name: "TypeScript", Level: 90, Category: "Frontend"},
				{Name: "UI/UX Design", Level: 85, Category: "Design"},
				{Name: "Node.js", Level: 80, Category: "Backend"},
				{Name: "Mobile Development", Level: 75, Category: "Mobile"},
				{Name: "DevOps", Level: 70, Category: "Infrastructure"},
			},
			Services: []Service{
				{
					Title:       "Frontend Development",
					Description: "Building responsive, performant web applications with modern frameworks and best practices.",
					Icon:        IconCode,
				},
				{
					Title:       "Backend Development",
					Description: "Creating robust APIs and server-side solutions with scalable architecture.",
					Icon:        IconDatabase,
				},
				{
					Title:       "UI/UX Design",
					Description: "Designing intuitive user interfaces and experiences that delight users.",
					Icon:        IconPalette,
				},
				{
					Title:       "Performance Optimization",
					Description: "Optimizing applications for speed, accessibility, and search engine visibility.",
					Icon:        IconZap,
				},
			},
		},
		Projects: ProjectsContent{
			Title:    "My Work",
			Subtitle: "Featured Projects",
			Description: "Here are some of my recent projects that showcase my skills in full-stack development, " +
				"UI/UX design, and problem-solving.",
			Projects: []Project{
				{
					ID:    "1",
					Title: "E-Commerce Platform",
					Description: "A full-stack e-commerce solution built with Next.js, featuring user authentication, " +
						"payment processing, and admin dashboard.",
					Image:     "/placeholder.svg?height=300&width=500",
					Tags:      []string{"Next.js", "TypeScript", "Stripe", "Prisma"},
					LiveURL:   "#",
					GitHubURL: "#",
					Featured:  true,
				},
				{
					ID:    "2",
					Title: "Task Management App",
					Description: "A collaborative task management application with real-time updates, drag-and-drop " +
						"functionality, and team collaboration features.",
					Image:     "/placeholder.svg?height=300&width=500",
					Tags:      []string{"React", "Node.js", "Socket.io", "MongoDB"},
					LiveURL:   "#",
					GitHubURL: "#",
					Featured:  true,
				},
				{
					ID:    "3",
					Title: "Weather Dashboard",
					Description: "A responsive weather dashboard with location-based forecasts, interactive maps, and " +
						"historical weather data visualization.",
					Image:     "/placeholder.svg?height=300&width=500",
					Tags:      []string{"Vue.js", "Chart.js", "Weather API", "Tailwind"},
					LiveURL:   "#",
					GitHubURL: "#",
					Featured:  false,
				},
			},
		},
		Contact: ContactContent{
			Title:    "Get In Touch",
			Subtitle: "Let's Work Together",
			Description: "I'm always interested in new opportunities and exciting projects. Whether you have a " +
				"question or just want to say hi, feel free to reach out!",
			Email:           "john.doe@example.com",
			EmailEnabled:    true,
			Phone:           "+1 (555) 123-4567",
			PhoneEnabled:    true,
			Location:        "San Francisco, CA",
			LocationEnabled: true,
			SocialLinks: ContactSocialLinks{
				GitHub:          "https://github.com",
				GitHubEnabled:   true,
				LinkedIn:        "https://linkedin.com",
				LinkedInEnabled: true,
				Twitter:         "https://twitter.com",
				TwitterEnabled:  true,
			},
			FormEnabled: true,
		},
	}
}
