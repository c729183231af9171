package maven

import (
	"testing"

	"github.com/mvnget/mvnget/pkg/coordinate"
)

func TestArtifactURL(t *testing.T) {
	const base = "https://repo1.maven.org/maven2"

	tests := map[string]struct {
		coord    coordinate.Coordinate
		resolved string
		want     string
		wantErr  bool
	}{
		"release": {
			coord: coordinate.Coordinate{Group: "org.apache.maven", Artifact: "maven", Version: "3.2.1", Extension: "jar"},
			want:  base + "/org/apache/maven/maven/3.2.1/maven-3.2.1.jar",
		},
		"release with classifier": {
			coord: coordinate.Coordinate{Group: "org.apache.maven", Artifact: "maven", Version: "3.2.1", Classifier: "sources", Extension: "jar"},
			want:  base + "/org/apache/maven/maven/3.2.1/maven-3.2.1-sources.jar",
		},
		"release ignores resolved value": {
			coord:    coordinate.Coordinate{Group: "g", Artifact: "a", Version: "1.0", Extension: "war"},
			resolved: "irrelevant",
			want:     base + "/g/a/1.0/a-1.0.war",
		},
		"snapshot uses timestamped filename": {
			coord:    coordinate.Coordinate{Group: "org.example", Artifact: "mylib", Version: "1.0-SNAPSHOT", Extension: "jar"},
			resolved: "1.0-20230101.120000-1",
			want:     base + "/org/example/mylib/1.0-SNAPSHOT/mylib-1.0-20230101.120000-1.jar",
		},
		"snapshot with classifier": {
			coord:      coordinate.Coordinate{Group: "org.example", Artifact: "mylib", Version: "1.0-SNAPSHOT", Classifier: "sources", Extension: "jar"},
			resolved:   "1.0-20230101.120000-1",
			want:       base + "/org/example/mylib/1.0-SNAPSHOT/mylib-1.0-20230101.120000-1-sources.jar",
		},
		"snapshot without resolved timestamp": {
			coord:   coordinate.Coordinate{Group: "org.example", Artifact: "mylib", Version: "1.0-SNAPSHOT", Extension: "jar"},
			wantErr: true,
		},
		"missing version": {
			coord:   coordinate.Coordinate{Group: "g", Artifact: "a", Extension: "jar"},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ArtifactURL(base, tc.coord, tc.resolved)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ArtifactURL error = %v, wantErr = %v", err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ArtifactURL = %q, want %q", got, tc.want)
			}
		})
	}
}
