package splat

import (
	"testing"

	"github.com/cwbudde/gosplat/internal/camera"
	"github.com/cwbudde/gosplat/internal/linalg"
)

func TestProjectBehindCamera(t *testing.T) {
	cam := camera.New(64, 64, 1)
	cov := linalg.Diag3(linalg.Vec3{0.01, 0.01, 0.01})
	d := Project(cam, linalg.Vec4{0, 0, -5, 1}, cov)
	if !d.Behind {
		t.Errorf("Project() for a point behind the camera should set Behind")
	}
}

func TestProjectInFrontIsCentered(t *testing.T) {
	cam := camera.New(64, 64, 1)
	cov := linalg.Diag3(linalg.Vec3{0.01, 0.01, 0.01})
	d := Project(cam, linalg.Vec4{0, 0, 5, 1}, cov)
	if d.Behind {
		t.Errorf("Project() for a point in front of the camera should not set Behind")
	}
	if diff := d.XC - cam.Px; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("on-axis point should project to image center: XC = %v, want ~%v", d.XC, cam.Px)
	}
}

func TestProjectExtentPositive(t *testing.T) {
	cam := camera.New(64, 64, 1)
	cov := linalg.Diag3(linalg.Vec3{0.05, 0.05, 0.05})
	d := Project(cam, linalg.Vec4{0, 0, 5, 1}, cov)
	if d.XR <= 0 || d.YR <= 0 {
		t.Errorf("extents should be positive: XR=%v YR=%v", d.XR, d.YR)
	}
}
