package grc

// cisControlsCatalog contains the CIS Controls v8 safeguards this tool
// recommends for scored risk scenarios. Not part of Builtin(); exposed
// through Supplemental() alongside NIST SP 800-53.
var cisControlsCatalog = Catalog{
	Framework: FrameworkCISControls,
	Version:   "v8",
	Controls: []Control{
		{
			ID:          "1.1",
			Name:        "Establish and maintain detailed enterprise asset inventory",
			Description: "Keep an accurate, up-to-date inventory of all enterprise assets with the potential to store or process data.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "2.2",
			Name:        "Ensure authorized software is currently supported",
			Description: "Only designate currently supported software as authorized; document exceptions with compensating controls.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "3.3",
			Name:        "Configure data access control lists",
			Description: "Configure access control lists based on a user's need to know for local and remote file systems, databases, and applications.",
			Domains:     []Domain{DomainAccessControl, DomainDataProtection},
		},
		{
			ID:          "3.11",
			Name:        "Encrypt sensitive data at rest",
			Description: "Encrypt sensitive data at rest on servers, applications, and databases containing such data.",
			Domains:     []Domain{DomainDataProtection},
		},
		{
			ID:          "4.1",
			Name:        "Establish and maintain a secure configuration process",
			Description: "Establish and maintain a secure configuration process for enterprise assets and software.",
			Domains:     []Domain{DomainDeviceSecurity, DomainGeneral},
		},
		{
			ID:          "5.2",
			Name:        "Use unique passwords",
			Description: "Use unique passwords for all enterprise assets, with minimum lengths per account type.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "6.3",
			Name:        "Require MFA for externally-exposed applications",
			Description: "Require all externally-exposed enterprise or third-party applications to enforce multi-factor authentication.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "6.8",
			Name:        "Define and maintain role-based access control",
			Description: "Define and document access rights for each role, assigning access based on need to know and least privilege.",
			Domains:     []Domain{DomainAccessControl},
		},
		{
			ID:          "7.1",
			Name:        "Establish and maintain a vulnerability management process",
			Description: "Establish and maintain a documented vulnerability management process for enterprise assets.",
			Domains:     []Domain{DomainDeviceSecurity, DomainGeneral},
		},
		{
			ID:          "8.2",
			Name:        "Collect audit logs",
			Description: "Collect audit logs across enterprise assets per the log management process.",
			Domains:     []Domain{DomainLoggingMonitoring},
		},
		{
			ID:          "8.11",
			Name:        "Conduct audit log reviews",
			Description: "Review audit logs to detect anomalies or abnormal events that could indicate a potential threat.",
			Domains:     []Domain{DomainLoggingMonitoring},
		},
		{
			ID:          "10.1",
			Name:        "Deploy and maintain anti-malware software",
			Description: "Deploy and maintain anti-malware software on all enterprise assets.",
			Domains:     []Domain{DomainDeviceSecurity},
		},
		{
			ID:          "11.1",
			Name:        "Establish and maintain a data recovery process",
			Description: "Establish and maintain a data recovery process covering scope, prioritization, and data protection.",
			Domains:     []Domain{DomainDataProtection},
		},
		{
			ID:          "12.2",
			Name:        "Establish and maintain a secure network architecture",
			Description: "Design the network around segmentation, least privilege, and availability requirements.",
			Domains:     []Domain{DomainNetworkSecurity},
		},
		{
			ID:          "13.1",
			Name:        "Centralize security event alerting",
			Description: "Centralize security event alerting across enterprise assets for log correlation and analysis.",
			Domains:     []Domain{DomainLoggingMonitoring, DomainNetworkSecurity},
		},
		{
			ID:          "13.6",
			Name:        "Collect network traffic flow logs",
			Description: "Collect network traffic flow logs or traffic to review and alert upon from network devices.",
			Domains:     []Domain{DomainNetworkSecurity, DomainLoggingMonitoring},
		},
	},
}
