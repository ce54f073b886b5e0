package vocab

// DefaultConfig returns the built-in vocabulary. Bit values are part
// of the published encoding: append new categories with the next
// unused power of two, never renumber existing ones — stored flags
// from earlier runs are only interpretable against stable bits.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Fields: map[Field]FieldConfig{
			FieldExam: {
				Categories: []CategoryConfig{
					{Name: "ct", Bit: 1},
					{Name: "mri", Bit: 2},
					{Name: "ultrasound", Bit: 4},
					{Name: "xray", Bit: 8},
					{Name: "nuclear", Bit: 16},
					{Name: "interventional", Bit: 32},
					{Name: "cardiac", Bit: 64},
					{Name: "checkup", Bit: 128},
				},
				Aliases: examAliases(),
			},
			FieldOrgan: {
				Categories: []CategoryConfig{
					{Name: "head", Bit: 1},
					{Name: "neck", Bit: 2},
					{Name: "thorax", Bit: 4},
					{Name: "abdomen_pelvis", Bit: 8},
					{Name: "upper_extremities", Bit: 16},
					{Name: "lower_extremities", Bit: 32},
					{Name: "spine", Bit: 64},
					{Name: "skeletal", Bit: 128},
					{Name: "lymphatic", Bit: 256},
					{Name: "body", Bit: 512},
				},
				Aliases: organAliases(),
			},
			FieldContrast: {
				Categories: []CategoryConfig{
					{Name: "without", Bit: 0},
					{Name: "with", Bit: 1},
					{Name: "with_or_without", Bit: 2},
				},
				Aliases: contrastAliases(),
			},
		},
	}
}

// Default builds the built-in vocabulary. The configuration data is
// static and covered by tests, so a build failure here is a programming
// error.
func Default() *Vocabulary {
	v, err := Build(DefaultConfig())
	if err != nil {
		panic("vocab: built-in vocabulary invalid: " + err.Error())
	}
	return v
}

func examAliases() map[string][]string {
	aliases := fromTerms(map[string][]string{
		"ct": {"ct", "ct scan", "ct angiography", "ct enterography",
			"ct high resolution", "ct colonography", "ct venography",
			"ct maxillofacial", "ct pancreatitis protocol", "ct retroperitoneal",
			"ct angiography retroperitoneum", "ct retroperitoneal space",
			"ct enteroclysis", "ct angiography perfusion",
			"ct angiography aortography", "ct arteriography", "ct arthrography",
			"computed tomography ct scan", "high resolution ct scan",
			"ct, ct urography"},
		"mri": {"mri", "mri enterography", "mri angiography",
			"mri brain and mr angiography", "cardiac mri", "pelvic mri", "mrcp",
			"mrv"},
		"ultrasound": {"ultrasound", "doppler ultrasound",
			"carotid duplex ultrasound", "pelvic ultrasound",
			"arterial/venous duplex ultrasound", "duplex ultrasound"},
		"xray": {"xray", "x-ray", "mammogram", "mammography", "radiography",
			"dental ct scan", "barium swallow study"},
		"nuclear": {"petct", "pet scan", "nuclear bone scan", "bone scan",
			"whole body bone scan", "dexa scan"},
		"interventional": {"cervical nerve root block", "lumbar nerve root block",
			"pudendal nerve root block", "catheter", "biopsy", "colonoscopy",
			"retrograde pyelogram", "esophagography", "cystoscopy", "cystography",
			"esophagogastroduodenoscopy", "epidural steroid injection"},
		"cardiac": {"echocardiogram", "stress test", "coronary angiography",
			"stress echocardiogram"},
		"checkup": {"general health check-up", "general physical exam",
			"complete blood count", "general check-up", "physical examination",
			"comprehensive metabolic panel", "complete body scan", "check-up"},
	})
	// Source systems emit a handful of combined orders as one string.
	aliases["ct, x-ray"] = []string{"ct", "xray"}
	aliases["ct, xray"] = []string{"ct", "xray"}
	return aliases
}

func organAliases() map[string][]string {
	aliases := fromTerms(map[string][]string{
		"head": {"head", "cranial", "skull", "brain", "cerebral", "facial",
			"sinus", "sinuses", "paranasal sinuses", "temporal bone", "face",
			"orbit", "temporomandibular joints", "temporomandibular joint",
			"maxilla", "mandible", "pituitary gland", "pituitary",
			"maxillofacial area", "maxillofacial", "maxillofacial region",
			"nasopharynx", "salivary glands", "mouth area", "tongue", "scalp",
			"eye", "intracranial", "ear"},
		"neck": {"neck", "cervical", "throat", "nuchal", "larynx", "esophagus",
			"carotid arteries", "carotid", "parotid gland", "thyroid"},
		"thorax": {"thorax", "chest", "thoracic", "pulmonary", "heart", "cardiac",
			"breast", "breasts", "mediastinum", "aorta", "aortic", "coronary",
			"coronaries", "aorta branches", "sternoclavicular joint",
			"joint sternoclavicular", "trachea", "lung", "lungs", "clavicula",
			"scapula bone", "subclavian artery", "coronary arteries"},
		"abdomen_pelvis": {"abdomen", "abdominal", "stomach", "intestinal",
			"gastrointestinal", "liver", "pancreas", "spleen", "small bowel",
			"colon", "colonography colon", "gallbladder", "kidney", "kidneys",
			"urinary organs", "biliary tract", "biliary system", "renal",
			"adrenal", "adrenal gland", "adrenal glands", "pelvis", "pelvic",
			"hip", "inguinal", "pubic", "iliac vein", "urinary bladder",
			"urinary tract", "prostate", "uterus", "uterus and ovaries",
			"abdomen pelvis"},
		"upper_extremities": {"upper", "arm", "shoulder", "elbow", "wrist",
			"hand", "scapula", "clavicle", "humerus", "ulna", "forearm",
			"finger", "brachial plexus", "thumb"},
		"lower_extremities": {"lower", "leg", "knee", "knees", "foot", "thigh",
			"tibia", "femur", "calcaneus", "popliteal artery", "malleolus",
			"femoral nerve", "lower extremities", "iliofemoral arteries",
			"ankle"},
		"spine": {"spine", "vertebral", "lumbar", "sacral", "spinal canal",
			"spinal cord", "spinal", "thoracic spine"},
		"skeletal": {"joint", "bone", "bones", "skeletal", "skeleton",
			"musculoskeletal", "musculoskeletal system"},
		"lymphatic": {"lymph nodes", "lymphatic system"},
		"body": {"whole body", "body", "full body", "various organs",
			"multiple organs", "multiple organ systems", "muscular system",
			"skin", "limbs", "blood", "peripheral", "endocrine system",
			"muscles", "vascular region", "vascular system", "arterial system"},
	})
	// "extremities" alone is ambiguous between the skeletal view and a
	// whole-body reading; the source encoding flags both.
	aliases["extremities"] = []string{"skeletal", "body"}
	return aliases
}

func contrastAliases() map[string][]string {
	aliases := fromTerms(map[string][]string{
		"with": {"with", "w", "with iv contrast", "with contrast",
			"with contrast material", "with oral contrast", "w contrast",
			"contrast given", "contrast enhanced", "post contrast"},
		"without": {"without", "wo", "without iv contrast", "without contrast",
			"without contrast material", "no contrast", "non contrast",
			"noncontrast", "unenhanced", "wo contrast"},
		"with_or_without": {"with or without", "with or without contrast",
			"with or without iv contrast", "with and without",
			"with and without contrast", "wo/w", "w/wo"},
	})
	return aliases
}

// fromTerms inverts category -> term lists into the alias table shape.
func fromTerms(terms map[string][]string) map[string][]string {
	aliases := make(map[string][]string)
	for category, list := range terms {
		for _, t := range list {
			aliases[t] = append(aliases[t], category)
		}
	}
	return aliases
}
