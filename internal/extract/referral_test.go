package extract

import "testing"

func TestCleanRecommendation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"labeled recommendation",
			"Patient presents with pain. Recommendation: CT abdomen with IV contrast. Follow up in 2 weeks.",
			"CT abdomen with IV contrast",
		},
		{
			"labeled exam",
			"Exam: MRI brain without contrast.\nIndication: headache.",
			"MRI brain without contrast",
		},
		{
			"case insensitive label",
			"RECOMMENDATION: ultrasound pelvis",
			"ultrasound pelvis",
		},
		{
			"unlabeled text flattened",
			"CT thorax\nwith contrast.",
			"CT thorax with contrast",
		},
		{
			"trailing period stripped",
			"MRI enterography.",
			"MRI enterography",
		},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanRecommendation(tc.in); got != tc.want {
				t.Errorf("CleanRecommendation(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanRecommendationStripsMarkup(t *testing.T) {
	in := `<html><body>
	<script>var x = 1;</script>
	<p>Recommendation: CT abdomen w contrast.</p>
	</body></html>`

	if got := CleanRecommendation(in); got != "CT abdomen w contrast" {
		t.Errorf("CleanRecommendation = %q, want %q", got, "CT abdomen w contrast")
	}
}

func TestParseReferral(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Referral
	}{
		{
			"modifier extends exam",
			"ct angiography thorax with iv contrast",
			Referral{Exam: "ct angiography", BodyPart: "thorax", Contrast: "with iv contrast"},
		},
		{
			"single word exam",
			"mri brain wo contrast",
			Referral{Exam: "mri", BodyPart: "brain", Contrast: "wo contrast"},
		},
		{
			"no contrast keyword",
			"ultrasound abdomen",
			Referral{Exam: "ultrasound", BodyPart: "abdomen"},
		},
		{
			"commas stripped",
			"ct scan, abdomen, w contrast",
			Referral{Exam: "ct scan", BodyPart: "abdomen", Contrast: "w contrast"},
		},
		{
			"contrast only",
			"ct without iv contrast",
			Referral{Exam: "ct", BodyPart: "", Contrast: "without iv contrast"},
		},
		{"empty", "", Referral{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseReferral(tc.in); got != tc.want {
				t.Errorf("ParseReferral(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}
