package grc

// nist80053Catalog contains the NIST SP 800-53 controls this tool
// recommends for scored risk scenarios. Not part of Builtin(); exposed
// through Supplemental() for registers assessed against federal
// baselines.
var nist80053Catalog = Catalog{
	Framework: FrameworkNIST80053,
	Version:   "Rev 5",
	Controls: []Control{
		{
			ID:          "AC-2",
			Name:        "Account management",
			Description: "Define, authorize, monitor, and remove system accounts over their full life cycle.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "AC-3",
			Name:        "Access enforcement",
			Description: "Enforce approved authorizations for logical access to information and system resources.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "AC-6",
			Name:        "Least privilege",
			Description: "Allow only the accesses necessary to accomplish assigned organizational tasks.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "AC-17",
			Name:        "Remote access",
			Description: "Establish usage restrictions and authorize each type of remote access before allowing connections.",
			Domains:     []Domain{DomainAccessControl, DomainNetworkSecurity},
		},
		{
			ID:          "AU-6",
			Name:        "Audit record review, analysis, and reporting",
			Description: "Review and analyze system audit records for indications of inappropriate or unusual activity.",
			Domains:     []Domain{DomainLoggingMonitoring},
		},
		{
			ID:          "CA-7",
			Name:        "Continuous monitoring",
			Description: "Develop and implement a continuous monitoring strategy with ongoing control assessments.",
			Domains:     []Domain{DomainLoggingMonitoring, DomainGeneral},
		},
		{
			ID:          "CM-8",
			Name:        "System component inventory",
			Description: "Develop and maintain an inventory of system components that accurately reflects the system.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "CP-9",
			Name:        "System backup",
			Description: "Conduct backups of user-level and system-level information at an organization-defined frequency.",
			Domains:     []Domain{DomainDataProtection},
		},
		{
			ID:          "IA-2",
			Name:        "Identification and authentication",
			Description: "Uniquely identify and authenticate organizational users and processes acting on their behalf.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "IA-5",
			Name:        "Authenticator management",
			Description: "Manage system authenticators, protecting them from unauthorized disclosure and modification.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "IR-4",
			Name:        "Incident handling",
			Description: "Implement incident handling covering preparation, detection, analysis, containment, eradication, and recovery.",
			Domains:     []Domain{DomainLoggingMonitoring, DomainGeneral},
		},
		{
			ID:          "MP-6",
			Name:        "Media sanitization",
			Description: "Sanitize system media before disposal, release, or re-use using approved techniques.",
			Domains:     []Domain{DomainDeviceSecurity, DomainDataProtection},
		},
		{
			ID:          "RA-3",
			Name:        "Risk assessment",
			Description: "Assess the risk from unauthorized access, use, disclosure, disruption, modification, or destruction of the system.",
			Domains:     []Domain{DomainGeneral},
		},
		{
			ID:          "RA-5",
			Name:        "Vulnerability monitoring and scanning",
			Description: "Monitor and scan for system vulnerabilities and remediate legitimate findings within defined response times.",
			Domains:     []Domain{DomainDeviceSecurity, DomainGeneral},
		},
		{
			ID:          "SC-7",
			Name:        "Boundary protection",
			Description: "Monitor and control communications at external and key internal managed interfaces.",
			Domains:     []Domain{DomainNetworkSecurity},
		},
		{
			ID:          "SC-8",
			Name:        "Transmission confidentiality and integrity",
			Description: "Protect the confidentiality and integrity of transmitted information.",
			Domains:     []Domain{DomainNetworkSecurity, DomainDataProtection},
		},
		{
			ID:          "SC-28",
			Name:        "Protection of information at rest",
			Description: "Protect the confidentiality and integrity of information at rest.",
			Domains:     []Domain{DomainDataProtection},
		},
		{
			ID:          "SI-2",
			Name:        "Flaw remediation",
			Description: "Identify, report, and correct system flaws, installing security-relevant updates within defined periods.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "SI-3",
			Name:        "Malicious code protection",
			Description: "Implement malicious code protection at system entry and exit points to detect and eradicate malicious code.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "SI-4",
			Name:        "System monitoring",
			Description: "Monitor the system to detect attacks, indicators of potential attacks, and unauthorized connections.",
			Domains:     []Domain{DomainLoggingMonitoring},
		},
	},
}
