package math

import "github.com/go-gl/mathgl/mgl32"

func TransformCreate() *Transform {
	return TransformFromPositionRotationScale(NewVec3Zero(), NewVec3Zero(), NewVec3One())
}

func TransformFromPosition(position Vec3) *Transform {
	return TransformFromPositionRotationScale(position, NewVec3Zero(), NewVec3One())
}

func TransformFromPositionRotationScale(position, rotation, scale Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, scale)
	t.Local = mgl32.Ident4()
	t.Parent = nil
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation Vec3) {
	t.Rotation = rotation
	t.IsDirty = true
}

// Rotate adds the given Euler deltas (radians) to the current rotation.
func (t *Transform) Rotate(delta Vec3) {
	t.Rotation = t.Rotation.Add(delta)
	t.IsDirty = true
}

// RotateX adds angle radians of pitch.
func (t *Transform) RotateX(angle float32) {
	t.Rotation[0] += angle
	t.IsDirty = true
}

// RotateY adds angle radians of yaw.
func (t *Transform) RotateY(angle float32) {
	t.Rotation[1] += angle
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position, rotation, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// RotationMatrix returns Rx * Ry * Rz for the current Euler angles.
func (t *Transform) RotationMatrix() Mat4 {
	rx := mgl32.HomogRotate3DX(t.Rotation.X())
	ry := mgl32.HomogRotate3DY(t.Rotation.Y())
	rz := mgl32.HomogRotate3DZ(t.Rotation.Z())
	return rx.Mul4(ry).Mul4(rz)
}

// GetLocal returns translation * rotation * scale, rebuilding it when dirty.
func (t *Transform) GetLocal() Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	if t.IsDirty {
		tr := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
		s := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
		t.Local = tr.Mul4(t.RotationMatrix()).Mul4(s)
		t.IsDirty = false
	}
	return t.Local
}

func (t *Transform) GetWorld() Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	l := t.GetLocal()
	if t.Parent != nil {
		return t.Parent.GetWorld().Mul4(l)
	}
	return l
}
