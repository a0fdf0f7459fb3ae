package directory

// seedVersion stamps the built-in roster. Bump it when seedEmployees changes
// so deployments overwrite stale stored snapshots on startup.
const seedVersion = 3

// seedEmployees is the BriteCo roster the snapshot is initialized from.
var seedEmployees = []Employee{
	{Name: "Dylanne Crugnale", Email: "dylanne.crugnale@brite.co", BirthdayMonth: 1, BirthdayDay: 15, Department: "Marketing", Title: "Marketing Manager"},
	{Name: "Selena Fragassi", Email: "selena.fragassi@brite.co", BirthdayMonth: 2, BirthdayDay: 10, Department: "Content", Title: "Content Director"},
	{Name: "John Ortbal", Email: "john.ortbal@brite.co", BirthdayMonth: 3, BirthdayDay: 5, Department: "Sales", Title: "Sales Director"},
	{Name: "Stef Lynn", Email: "stef.lynn@brite.co", BirthdayMonth: 4, BirthdayDay: 20, Department: "Operations", Title: "Operations Manager"},
	{Name: "Rachel Akmakjian", Email: "rachel.akmakjian@brite.co", BirthdayMonth: 5, BirthdayDay: 8, Department: "Content", Title: "Content Writer"},
	{Name: "Sam McGregor", Email: "sam.mcregor@brite.co", BirthdayMonth: 6, BirthdayDay: 12, Department: "Customer Success", Title: "CS Team Lead"},
	{Name: "Alex Johnson", Email: "alex.johnson@brite.co", BirthdayMonth: 7, BirthdayDay: 3, Department: "Engineering", Title: "Software Engineer"},
	{Name: "Jordan Lee", Email: "jordan.lee@brite.co", BirthdayMonth: 8, BirthdayDay: 28, Department: "Product", Title: "Product Manager"},
	{Name: "Morgan Smith", Email: "morgan.smith@brite.co", BirthdayMonth: 9, BirthdayDay: 17, Department: "Design", Title: "UI/UX Designer"},
	{Name: "Casey Rivera", Email: "casey.rivera@brite.co", BirthdayMonth: 10, BirthdayDay: 22, Department: "Sales", Title: "Account Executive"},
	{Name: "Taylor Chen", Email: "taylor.chen@brite.co", BirthdayMonth: 11, BirthdayDay: 6, Department: "Engineering", Title: "Backend Developer"},
	{Name: "Riley Kim", Email: "riley.kim@brite.co", BirthdayMonth: 12, BirthdayDay: 14, Department: "Customer Success", Title: "CS Specialist"},
}
