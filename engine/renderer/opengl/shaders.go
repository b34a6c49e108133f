package opengl

const phongVertexShader = `
#version 410 core

layout(location = 0) in vec3 in_position;
layout(location = 1) in vec3 in_normal;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

out vec3 frag_position;
out vec3 frag_normal;

void main() {
	vec4 world = model * vec4(in_position, 1.0);
	frag_position = world.xyz;
	frag_normal = mat3(transpose(inverse(model))) * in_normal;
	gl_Position = projection * view * world;
}
` + "\x00"

const phongFragmentShader = `
#version 410 core

#define MAX_LIGHTS 4

in vec3 frag_position;
in vec3 frag_normal;

uniform vec3 view_position;
uniform vec3 diffuse_colour;
uniform vec3 specular_colour;
uniform float shininess;
uniform int flat_shading;

uniform int light_count;
uniform vec3 light_directions[MAX_LIGHTS];
uniform vec3 light_radiance[MAX_LIGHTS];
uniform vec3 ambient;

out vec4 out_colour;

void main() {
	vec3 normal;
	if (flat_shading != 0) {
		normal = normalize(cross(dFdx(frag_position), dFdy(frag_position)));
	} else {
		normal = normalize(frag_normal);
	}
	vec3 view_dir = normalize(view_position - frag_position);

	vec3 colour = ambient * diffuse_colour;
	for (int i = 0; i < light_count; i++) {
		vec3 light_dir = normalize(light_directions[i]);
		float diffuse = max(dot(normal, light_dir), 0.0);
		vec3 half_dir = normalize(light_dir + view_dir);
		float specular = pow(max(dot(normal, half_dir), 0.0), shininess);
		colour += light_radiance[i] * (diffuse_colour * diffuse + specular_colour * specular);
	}
	out_colour = vec4(colour, 1.0);
}
` + "\x00"

// Fullscreen quad generated from gl_VertexID, drawn as a 4 vertex strip.
const overlayVertexShader = `
#version 410 core

out vec2 uv;

void main() {
	vec2 corner = vec2(float(gl_VertexID & 1), float(gl_VertexID >> 1));
	uv = vec2(corner.x, 1.0 - corner.y);
	gl_Position = vec4(corner * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

const overlayFragmentShader = `
#version 410 core

in vec2 uv;

uniform sampler2D overlay;

out vec4 out_colour;

void main() {
	out_colour = texture(overlay, uv);
}
` + "\x00"

const maxLights = 4
